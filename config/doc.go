// Package config loads DefinitionHelper settings from the environment and
// optional .env files, and parses YAML seed manifests.
package config
