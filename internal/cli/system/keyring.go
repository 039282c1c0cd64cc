package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/onething/internal/cli"
	"github.com/julianstephens/onething/internal/config"
	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/keyring"
)

// KeyringSetCmd stores a text-generation API key in the OS keyring
type KeyringSetCmd struct {
	Key      string `arg:"" help:"API key for the text-generation service."`
	Provider string `help:"Provider the key belongs to (gemini, anthropic, remote). Defaults to the configured provider."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	provider, err := resolveProvider(ctx, cmd.Provider)
	if err != nil {
		return err
	}

	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	if err := keyring.SetAPIKey(provider, key); err != nil {
		return err
	}

	fmt.Printf("✓ %s API key stored successfully in OS keyring\n", provider)
	return nil
}

// KeyringGetCmd shows the stored API key, masked
type KeyringGetCmd struct {
	Provider string `help:"Provider to look up. Defaults to the configured provider."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	provider, err := resolveProvider(ctx, cmd.Provider)
	if err != nil {
		return err
	}

	key, err := keyring.GetAPIKey(provider)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s API key found in keyring. Use 'onething keyring set' to store one", provider)
		}
		return fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}

	fmt.Printf("%s API key: %s\n", provider, keyring.Mask(key))
	return nil
}

// KeyringDeleteCmd removes the API key from the OS keyring
type KeyringDeleteCmd struct {
	Provider string `help:"Provider whose key to delete. Defaults to the configured provider."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	provider, err := resolveProvider(ctx, cmd.Provider)
	if err != nil {
		return err
	}

	if err := keyring.DeleteAPIKey(provider); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s API key found in keyring", provider)
		}
		return err
	}

	fmt.Printf("✓ %s API key deleted from OS keyring\n", provider)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		fmt.Printf("   Set %s instead.\n", envHint(cli.ProviderLabel(ctx.Config)))
		return keyring.ErrKeyringUnavailable
	}

	fmt.Println("✓ OS keyring is available")
	for _, provider := range []string{constants.ProviderGemini, constants.ProviderAnthropic, constants.ProviderRemote} {
		_, err := keyring.GetAPIKey(provider)
		switch {
		case err == nil:
			fmt.Printf("✓ %s API key is stored in keyring\n", provider)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("ℹ No %s API key stored in keyring\n", provider)
		default:
			fmt.Printf("⚠ Could not read %s API key: %v\n", provider, err)
		}
	}
	return nil
}

func resolveProvider(ctx *cli.Context, provider string) (string, error) {
	if provider == "" {
		return cli.ProviderLabel(ctx.Config), nil
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	switch provider {
	case constants.ProviderGemini, constants.ProviderAnthropic, constants.ProviderRemote:
		return provider, nil
	}
	return "", fmt.Errorf("unknown provider %q (expected gemini, anthropic or remote)", provider)
}

// envHint names the environment variables that can hold provider's key.
func envHint(provider string) string {
	return strings.Join(config.APIKeyEnvVars(provider), " or ")
}
