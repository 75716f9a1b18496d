/*
Package api exposes a definition registry to independently loaded modules.

A Sender publishes a MethodTable on a Bus channel (8754 by default) together
with the API version. It announces when loaded, answers any string message on
the channel with a fresh announcement and announces a nil table when unloaded.

	bus := api.NewLocalBus()
	sender := api.NewSender(bus, reg, logger)
	sender.Load()
	defer sender.Unload()

A Client is the consuming side. It accepts announcements of its own version,
binds the table to typed functions and reports ErrProviderUnavailable while no
provider is present.

	client := api.NewClient(bus, definitionhelper.APIVersion)
	client.Load()
	payload, err := client.GetDefinition("laser", definitionhelper.NewTypeKey("Weapon"))
*/
package api
