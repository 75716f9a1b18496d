/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package api

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
	"github.com/StarCoreSE/DefinitionHelper/errors"
)

// RequestMessage is the string a client sends to ask providers to announce.
const RequestMessage = "DefinitionHelper.Client"

// boundMethods holds the typed functions of an accepted announcement.
type boundMethods struct {
	registerDefinition   RegisterDefinitionFunc
	getDefinition        GetDefinitionFunc
	getDefinitionsOfType GetDefinitionsOfTypeFunc
	removeDefinition     RemoveDefinitionFunc
	hasDefinition        HasDefinitionFunc
	registerDelegates    RegisterDelegatesFunc
	getDelegates         GetDelegatesFunc
	registerOnUpdate     RegisterOnUpdateFunc
	unregisterOnUpdate   UnregisterOnUpdateFunc
	logDebug             LogFunc
	logInfo              LogFunc
	logException         LogExceptionFunc
}

// Client is the peer side of the adapter. It waits for a provider
// announcement of its version and calls the provider through typed wrappers.
type Client struct {
	bus  Bus
	opts Options

	mu      sync.RWMutex
	methods *boundMethods
	lastErr error
	onReady func()
	loaded  bool
}

// NewClient creates a client accepting announcements of version.
func NewClient(bus Bus, version int, opts ...Option) *Client {
	return &Client{
		bus:  bus,
		opts: buildOptions(append(opts, WithVersion(version))),
	}
}

// OnReady sets a hook run every time a table is accepted.
func (c *Client) OnReady(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReady = fn
}

// Load registers for announcements and requests one from any provider
// already loaded.
func (c *Client) Load() {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return
	}
	c.loaded = true
	c.mu.Unlock()

	c.bus.RegisterMessageHandler(c.opts.Channel, c)
	c.bus.SendMessage(c.opts.Channel, RequestMessage)
}

// Unload stops listening and drops the held table.
func (c *Client) Unload() {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return
	}
	c.loaded = false
	c.methods = nil
	c.mu.Unlock()

	c.bus.UnregisterMessageHandler(c.opts.Channel, c)
}

// Ready reports whether the client holds a provider table.
func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.methods != nil
}

// Err returns the reason the last announcement was rejected, if any.
func (c *Client) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// HandleMessage processes provider announcements. Anything else is ignored.
func (c *Client) HandleMessage(channel int64, data any) {
	if channel != c.opts.Channel {
		return
	}
	ann, ok := data.(Announcement)
	if !ok {
		return
	}

	if ann.Version != c.opts.Version {
		err := errors.NewVersionMismatchError(c.opts.Version, ann.Version)
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		c.opts.Logger.Warn("Ignoring definition API announcement", zap.Error(err))
		return
	}

	if ann.Methods == nil {
		c.mu.Lock()
		c.methods = nil
		c.mu.Unlock()
		c.opts.Logger.Info("Definition API provider unloaded")
		return
	}

	bound, err := bind(ann.Methods)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		c.opts.Logger.Warn("Rejected definition API method table", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.methods = bound
	c.lastErr = nil
	hook := c.onReady
	c.mu.Unlock()

	c.opts.Logger.Info("Definition API ready", zap.Int("version", ann.Version))
	if hook != nil {
		hook()
	}
}

func bind(table MethodTable) (*boundMethods, error) {
	var b boundMethods
	var err error
	lookup := func(name string, target any) {
		if err != nil {
			return
		}
		if !assign(table[name], target) {
			err = errors.NewValidationError(name, fmt.Sprintf("missing or has type %T", table[name]))
		}
	}

	lookup(MethodRegisterDefinition, &b.registerDefinition)
	lookup(MethodGetDefinition, &b.getDefinition)
	lookup(MethodGetDefinitionsOfType, &b.getDefinitionsOfType)
	lookup(MethodRemoveDefinition, &b.removeDefinition)
	lookup(MethodHasDefinition, &b.hasDefinition)
	lookup(MethodRegisterDelegates, &b.registerDelegates)
	lookup(MethodGetDelegates, &b.getDelegates)
	lookup(MethodRegisterOnUpdate, &b.registerOnUpdate)
	lookup(MethodUnregisterOnUpdate, &b.unregisterOnUpdate)
	lookup(MethodLogDebug, &b.logDebug)
	lookup(MethodLogInfo, &b.logInfo)
	lookup(MethodLogException, &b.logException)

	if err != nil {
		return nil, err
	}
	return &b, nil
}

func assign(v any, target any) bool {
	switch t := target.(type) {
	case *RegisterDefinitionFunc:
		*t, _ = v.(RegisterDefinitionFunc)
		return *t != nil
	case *GetDefinitionFunc:
		*t, _ = v.(GetDefinitionFunc)
		return *t != nil
	case *GetDefinitionsOfTypeFunc:
		*t, _ = v.(GetDefinitionsOfTypeFunc)
		return *t != nil
	case *RemoveDefinitionFunc:
		*t, _ = v.(RemoveDefinitionFunc)
		return *t != nil
	case *HasDefinitionFunc:
		*t, _ = v.(HasDefinitionFunc)
		return *t != nil
	case *RegisterDelegatesFunc:
		*t, _ = v.(RegisterDelegatesFunc)
		return *t != nil
	case *GetDelegatesFunc:
		*t, _ = v.(GetDelegatesFunc)
		return *t != nil
	case *RegisterOnUpdateFunc:
		*t, _ = v.(RegisterOnUpdateFunc)
		return *t != nil
	case *UnregisterOnUpdateFunc:
		*t, _ = v.(UnregisterOnUpdateFunc)
		return *t != nil
	case *LogFunc:
		*t, _ = v.(LogFunc)
		return *t != nil
	case *LogExceptionFunc:
		*t, _ = v.(LogExceptionFunc)
		return *t != nil
	default:
		return false
	}
}

func (c *Client) bound() (*boundMethods, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.methods == nil {
		return nil, errors.ErrProviderUnavailable
	}
	return c.methods, nil
}

// RegisterDefinition stores payload with the provider.
func (c *Client) RegisterDefinition(definitionID string, key definitionhelper.TypeKey, payload []byte) error {
	m, err := c.bound()
	if err != nil {
		return err
	}
	m.registerDefinition(definitionID, key, payload)
	return nil
}

// GetDefinition fetches a payload from the provider.
func (c *Client) GetDefinition(definitionID string, key definitionhelper.TypeKey) ([]byte, error) {
	m, err := c.bound()
	if err != nil {
		return nil, err
	}
	return m.getDefinition(definitionID, key)
}

// GetDefinitionsOfType lists the ids of a type.
func (c *Client) GetDefinitionsOfType(key definitionhelper.TypeKey) ([]string, error) {
	m, err := c.bound()
	if err != nil {
		return nil, err
	}
	return m.getDefinitionsOfType(key), nil
}

// RemoveDefinition removes a definition and its delegates.
func (c *Client) RemoveDefinition(definitionID string, key definitionhelper.TypeKey) error {
	m, err := c.bound()
	if err != nil {
		return err
	}
	m.removeDefinition(definitionID, key)
	return nil
}

// HasDefinition reports whether a definition exists.
func (c *Client) HasDefinition(definitionID string, key definitionhelper.TypeKey) (bool, error) {
	m, err := c.bound()
	if err != nil {
		return false, err
	}
	return m.hasDefinition(definitionID, key), nil
}

// RegisterDelegates stores a delegate bundle.
func (c *Client) RegisterDelegates(definitionID string, key definitionhelper.TypeKey, bundle map[string]any) error {
	m, err := c.bound()
	if err != nil {
		return err
	}
	return m.registerDelegates(definitionID, key, bundle)
}

// GetDelegates fetches a delegate bundle.
func (c *Client) GetDelegates(definitionID string, key definitionhelper.TypeKey) (map[string]any, bool, error) {
	m, err := c.bound()
	if err != nil {
		return nil, false, err
	}
	bundle, ok := m.getDelegates(definitionID, key)
	return bundle, ok, nil
}

// RegisterOnUpdate subscribes fn; kind carries the ChangeKind wire value.
func (c *Client) RegisterOnUpdate(key definitionhelper.TypeKey, fn func(definitionID string, kind int)) (uint64, error) {
	m, err := c.bound()
	if err != nil {
		return 0, err
	}
	return m.registerOnUpdate(key, fn), nil
}

// UnregisterOnUpdate removes a subscription.
func (c *Client) UnregisterOnUpdate(key definitionhelper.TypeKey, subscription uint64) error {
	m, err := c.bound()
	if err != nil {
		return err
	}
	m.unregisterOnUpdate(key, subscription)
	return nil
}

// LogDebug writes a debug message to the provider's log.
func (c *Client) LogDebug(message string) error {
	m, err := c.bound()
	if err != nil {
		return err
	}
	m.logDebug(message)
	return nil
}

// LogInfo writes an info message to the provider's log.
func (c *Client) LogInfo(message string) error {
	m, err := c.bound()
	if err != nil {
		return err
	}
	m.logInfo(message)
	return nil
}

// LogException reports err raised while handling source.
func (c *Client) LogException(err error, source definitionhelper.TypeKey) error {
	m, bErr := c.bound()
	if bErr != nil {
		return bErr
	}
	m.logException(err, source)
	return nil
}
