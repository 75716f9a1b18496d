/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package api

import (
	"go.uber.org/zap"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
)

// Method names published in the table.
const (
	MethodRegisterDefinition   = "RegisterDefinition"
	MethodGetDefinition        = "GetDefinition"
	MethodGetDefinitionsOfType = "GetDefinitionsOfType"
	MethodRemoveDefinition     = "RemoveDefinition"
	MethodHasDefinition        = "HasDefinition"
	MethodRegisterDelegates    = "RegisterDelegates"
	MethodGetDelegates         = "GetDelegates"
	MethodRegisterOnUpdate     = "RegisterOnUpdate"
	MethodUnregisterOnUpdate   = "UnregisterOnUpdate"
	MethodLogDebug             = "LogDebug"
	MethodLogInfo              = "LogInfo"
	MethodLogException         = "LogException"
)

// Signatures of the published methods. Peers assert table entries to these.
type (
	RegisterDefinitionFunc   = func(definitionID string, key definitionhelper.TypeKey, payload []byte)
	GetDefinitionFunc        = func(definitionID string, key definitionhelper.TypeKey) ([]byte, error)
	GetDefinitionsOfTypeFunc = func(key definitionhelper.TypeKey) []string
	RemoveDefinitionFunc     = func(definitionID string, key definitionhelper.TypeKey)
	HasDefinitionFunc        = func(definitionID string, key definitionhelper.TypeKey) bool
	RegisterDelegatesFunc    = func(definitionID string, key definitionhelper.TypeKey, bundle map[string]any) error
	GetDelegatesFunc         = func(definitionID string, key definitionhelper.TypeKey) (map[string]any, bool)
	RegisterOnUpdateFunc     = func(key definitionhelper.TypeKey, fn func(definitionID string, kind int)) uint64
	UnregisterOnUpdateFunc   = func(key definitionhelper.TypeKey, subscription uint64)
	LogFunc                  = func(message string)
	LogExceptionFunc         = func(err error, source definitionhelper.TypeKey)
)

// MethodTable maps method names to the functions above.
type MethodTable map[string]any

// Announcement is the message a provider sends on its channel. A nil Methods
// table announces that the provider is going away.
type Announcement struct {
	Version int
	Methods MethodTable
}

// Methods builds the method table exposing reg. Peer log calls are written to
// logger.
func Methods(reg *definitionhelper.Registry, logger *zap.Logger) MethodTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	peer := logger.With(zap.String("source", "peer"))

	return MethodTable{
		// Definitions
		MethodRegisterDefinition:   RegisterDefinitionFunc(reg.RegisterDefinition),
		MethodGetDefinition:        GetDefinitionFunc(reg.GetDefinition),
		MethodGetDefinitionsOfType: GetDefinitionsOfTypeFunc(reg.GetDefinitionsOfType),
		MethodRemoveDefinition:     RemoveDefinitionFunc(reg.RemoveDefinition),
		MethodHasDefinition:        HasDefinitionFunc(reg.HasDefinition),

		// Delegates
		MethodRegisterDelegates: RegisterDelegatesFunc(func(definitionID string, key definitionhelper.TypeKey, bundle map[string]any) error {
			return reg.RegisterDelegates(definitionID, key, bundle)
		}),
		MethodGetDelegates: GetDelegatesFunc(func(definitionID string, key definitionhelper.TypeKey) (map[string]any, bool) {
			return reg.GetDelegates(definitionID, key)
		}),

		// Actions
		MethodRegisterOnUpdate: RegisterOnUpdateFunc(func(key definitionhelper.TypeKey, fn func(string, int)) uint64 {
			var update definitionhelper.UpdateFunc
			if fn != nil {
				update = func(definitionID string, kind definitionhelper.ChangeKind) {
					fn(definitionID, int(kind))
				}
			}
			return uint64(reg.RegisterOnUpdate(key, update))
		}),
		MethodUnregisterOnUpdate: UnregisterOnUpdateFunc(func(key definitionhelper.TypeKey, subscription uint64) {
			reg.UnregisterOnUpdate(key, definitionhelper.SubscriptionID(subscription))
		}),

		// Logging
		MethodLogDebug: LogFunc(func(message string) {
			peer.Debug(message)
		}),
		MethodLogInfo: LogFunc(func(message string) {
			peer.Info(message)
		}),
		MethodLogException: LogExceptionFunc(func(err error, source definitionhelper.TypeKey) {
			peer.Error("Peer exception", zap.Error(err), zap.String("type", source.String()))
		}),
	}
}
