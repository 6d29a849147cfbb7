package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Settings shown by `config show`, with the config-store keys they map to.
var configKeys = []string{
	"ollama.base_url",
	"ollama.model",
	"ollama.embedding_model",
	"store.collection",
	"watcher.dir",
	"retrieval.top_k",
	"retrieval.cutoff",
	"llm.provider",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change persistent settings. Environment variables override
anything set here.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [provider]",
	Short: "Store an API key for a cloud provider",
	Long: `Prompts for an API key and stores it in the config file.
Providers: openai, anthropic. The local Ollama backend needs no key.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Configuration")
	cmd.Println()
	for _, key := range configKeys {
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-24s (default)\n", key)
			continue
		}
		cmd.Printf("  %-24s %v\n", key, val)
	}

	// API keys are shown masked, never in full.
	keys := make([]string, 0, 2)
	for _, provider := range []string{"openai", "anthropic"} {
		if k := configStore.GetString(provider + ".api_key"); k != "" {
			keys = append(keys, fmt.Sprintf("  %-24s %s", provider+".api_key", maskAPIKey(k)))
		}
	}
	if len(keys) > 0 {
		cmd.Println()
		sort.Strings(keys)
		for _, line := range keys {
			cmd.Println(line)
		}
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if strings.HasSuffix(key, ".api_key") {
		return errors.New("use `ghostvault config set-key` for API keys")
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	provider := strings.ToLower(args[0])
	switch provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unknown provider %q (expected openai or anthropic)", provider)
	}

	cmd.Printf("Enter %s API key: ", provider)
	key := readSecret()
	cmd.Println()
	if key == "" {
		return errors.New("no key entered")
	}

	if err := configStore.Set(provider+".api_key", key); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Stored %s API key (%s).\n", provider, maskAPIKey(key))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(configStore.Path())
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
