/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
	"github.com/StarCoreSE/DefinitionHelper/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "DefinitionHelper version")
	require.Contains(t, out, "API version: 1")
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
definitions:
  - {type: Weapon, id: railgun, payload: "damage: 40"}
  - {type: Weapon, id: laser, payload: "damage: 12"}
  - {type: Ship, id: corvette}
`), 0o600))

	t.Setenv("DEFHELPER_JOURNAL_ENABLED", "false")
	t.Setenv("DEFHELPER_LOG_LEVEL", "error")

	out, err := execute(t, "seed", "--manifest", manifest, "--env", filepath.Join(dir, "absent.env"))
	require.NoError(t, err)

	var listing map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	require.Equal(t, map[string][]string{
		"Ship":   {"corvette"},
		"Weapon": {"laser", "railgun"},
	}, listing)
}

func TestSeedCommandMissingManifestFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DEFHELPER_LOG_LEVEL", "error")

	_, err := execute(t, "seed", "--manifest", filepath.Join(dir, "missing.yaml"), "--env", filepath.Join(dir, "absent.env"))
	require.Error(t, err)
}

func TestSeedRequiresManifest(t *testing.T) {
	_, err := execute(t, "seed")
	require.Error(t, err)
}

func TestManifestKeys(t *testing.T) {
	m, err := config.ParseManifest([]byte("definitions:\n  - {type: A, id: x}\n  - {type: B, id: y}\n  - {type: A, id: z}\n"))
	require.NoError(t, err)

	keys := manifestKeys(m)
	require.Len(t, keys, 2)
	require.Equal(t, "A", keys[0].Name)
	require.Equal(t, "B", keys[1].Name)
}

// throttlingClient fails every write the way an under-provisioned table does.
type throttlingClient struct {
	puts atomic.Int32
	err  error
}

func (c *throttlingClient) PutItem(context.Context, *sdk.PutItemInput, ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	c.puts.Add(1)
	return nil, c.err
}

func (c *throttlingClient) Query(context.Context, *sdk.QueryInput, ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	return &sdk.QueryOutput{}, nil
}

func TestNewJournalRetriesInOneLayer(t *testing.T) {
	cases := map[string]struct {
		err   error
		calls int32
	}{
		"throttled":     {err: &types.ProvisionedThroughputExceededException{Message: aws.String("slow down")}, calls: 4},
		"missing table": {err: &types.ResourceNotFoundException{Message: aws.String("no table")}, calls: 1},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Journal.MaxRetries = 3
			cfg.Journal.Backoff = time.Millisecond

			client := &throttlingClient{err: tc.err}
			reg := definitionhelper.New()
			j := newJournal(client, cfg, zap.NewNop(), nil)
			j.Attach(reg, definitionhelper.NewTypeKey("Weapon"))

			reg.RegisterDefinition("laser", definitionhelper.NewTypeKey("Weapon"), []byte("x"))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			require.NoError(t, j.Close(ctx))
			require.Equal(t, tc.calls, client.puts.Load())
		})
	}
}
