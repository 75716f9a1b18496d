/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/StarCoreSE/DefinitionHelper/registry"
)

type turretDefinition struct{}

type shieldDefinition struct{}

func TestTypeKeyOf(t *testing.T) {
	registry.RegisterTypeName[shieldDefinition]("Shield")

	turret := TypeKeyOf[turretDefinition]()
	require.Equal(t, "turretDefinition", turret.Name)
	require.Equal(t, "github.com/StarCoreSE/DefinitionHelper", turret.Origin)
	require.Equal(t, turret, TypeKeyOf[*turretDefinition]())

	shield := TypeKeyOf[shieldDefinition]()
	require.Equal(t, "Shield", shield.Name)
	require.Equal(t, "github.com/StarCoreSE/DefinitionHelper.Shield", shield.String())
}

func TestTypeKeyOf_ResolvesAgainstNamedKey(t *testing.T) {
	registry.RegisterTypeName[shieldDefinition]("Shield")
	reg := New()

	reg.RegisterDefinition("Small", NewTypeKey("Shield"), []byte{1})

	require.True(t, reg.HasDefinition("Small", TypeKeyOf[shieldDefinition]()))
}

func TestResolver(t *testing.T) {
	reg := New()
	candidate := TypeKey{Name: "Weapon", Origin: "b"}

	require.Equal(t, candidate, reg.resolver.resolve(candidate))

	canonical := TypeKey{Name: "Weapon", Origin: "a"}
	reg.RegisterDefinition("Laser", canonical, nil)

	require.Equal(t, canonical, reg.resolver.resolve(candidate))
	require.Equal(t, recipeKey, reg.resolver.resolve(recipeKey))
}
