package wizard_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/collabland/discord-miniapp-framework/internal/wizard"

	"gotest.tools/v3/assert"
)

func testAnswers() wizard.Answers {
	return wizard.Answers{
		AppName:      "Card Game",
		ClientID:     "1234567890",
		ClientSecret: "super-secret-value",
		ServerPort:   3001,
		ClientPort:   3000,
		Environment:  "development",
	}
}

func TestScaffoldWritesProject(t *testing.T) {
	dir := t.TempDir()

	written, err := wizard.New(dir, false).Scaffold(testAnswers())

	assert.NilError(t, err)
	assert.Equal(t, 4, len(written))

	env, err := os.ReadFile(filepath.Join(dir, ".env"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(env), "MINIAPP_DISCORD_CLIENTID=1234567890"))
	assert.Assert(t, strings.Contains(string(env), "MINIAPP_DISCORD_CLIENTSECRET=super-secret-value"))
	assert.Assert(t, strings.Contains(string(env), "MINIAPP_SERVER_PORT=3001"))

	// The client env file only gets the public subset
	clientEnv, err := os.ReadFile(filepath.Join(dir, "client", ".env"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(clientEnv), "MINIAPP_DISCORD_CLIENTID=1234567890"))
	assert.Assert(t, !strings.Contains(string(clientEnv), "super-secret-value"))

	// Template files are copied as-is
	index, err := os.ReadFile(filepath.Join(dir, "client", "index.html"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(index), "/api/token"))

	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(gitignore), ".env"))
}

func TestScaffoldSecretFilePermissions(t *testing.T) {
	dir := t.TempDir()

	_, err := wizard.New(dir, false).Scaffold(testAnswers())
	assert.NilError(t, err)

	info, err := os.Stat(filepath.Join(dir, ".env"))
	assert.NilError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestScaffoldRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	assert.NilError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("keep me"), 0o600))

	_, err := wizard.New(dir, false).Scaffold(testAnswers())
	assert.ErrorContains(t, err, "already exists")

	contents, err := os.ReadFile(filepath.Join(dir, ".env"))
	assert.NilError(t, err)
	assert.Equal(t, "keep me", string(contents))
}

func TestScaffoldForceOverwrites(t *testing.T) {
	dir := t.TempDir()

	assert.NilError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("old"), 0o600))

	_, err := wizard.New(dir, true).Scaffold(testAnswers())
	assert.NilError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, ".env"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(contents), "MINIAPP_DISCORD_CLIENTID=1234567890"))
}

func TestScaffoldRequiresCredentials(t *testing.T) {
	dir := t.TempDir()

	answers := testAnswers()
	answers.ClientID = ""

	_, err := wizard.New(dir, false).Scaffold(answers)
	assert.ErrorContains(t, err, "client ID cannot be empty")

	answers = testAnswers()
	answers.ClientSecret = ""

	_, err = wizard.New(dir, false).Scaffold(answers)
	assert.ErrorContains(t, err, "client secret cannot be empty")
}

func TestScaffoldDefaults(t *testing.T) {
	dir := t.TempDir()

	_, err := wizard.New(dir, false).Scaffold(wizard.Answers{
		ClientID:     "1234567890",
		ClientSecret: "s",
	})
	assert.NilError(t, err)

	env, err := os.ReadFile(filepath.Join(dir, ".env"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(env), "MINIAPP_SERVER_PORT=3001"))
	assert.Assert(t, strings.Contains(string(env), "MINIAPP_SERVER_CLIENTPORT=3000"))
	assert.Assert(t, strings.Contains(string(env), "MINIAPP_ENVIRONMENT=development"))
}
