/*
Package registry manages type naming and payload decoding for DefinitionHelper.

The registry system enables:
  - Stable type names for Go types published as definitions
  - Caller-side decoding of opaque definition payloads by type name

Type Name Registry:
Maps Go types to the stable names the definition registry compares by:

	registry.RegisterTypeName[WeaponDefinition]("Weapon")
	name := registry.TypeName(reflect.TypeOf(WeaponDefinition{})) // "Weapon"

Unregistered types fall back to their reflect name.

Decoder Registry:
Associates a definition type name with a decode function:

	registry.RegisterDecoder("Weapon", registry.YAMLDecoder[WeaponDefinition]())
	v, err := registry.Decode("Weapon", payload)

The definition registry itself never decodes payloads; decoders are a
convenience for consumers. Both registries are thread-safe and should be
populated during initialization, typically in init() functions.
*/
package registry
