package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tickdown/tickdown/internal/config"
)

// starterDocument seeds a fresh project with a checklist that shows the
// structures the panel understands.
const starterDocument = `# TODO

- [ ] Replace this with a real task
  - [ ] Indent child tasks under their parent
- [x] Run tickdown init

## Later

- [ ] Tasks group under their nearest heading
`

// initCommand writes an example config and, when the configured
// document does not exist yet, a starter checklist.
func initCommand(cfg *config.Config, args []string) error {
	// Parse init-specific flags
	fs := flag.NewFlagSet("tickdown init", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	configPath := filepath.Join(cfg.ProjectRoot, "tickdown.toml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
	} else {
		if err := config.WriteExample(configPath); err != nil {
			return fmt.Errorf("writing example config: %w", err)
		}
		fmt.Printf("Created %s\n", configPath)
	}

	if _, err := os.Stat(cfg.File); err == nil {
		fmt.Printf("Document already exists: %s\n", cfg.File)
		return nil
	}
	if err := os.WriteFile(cfg.File, []byte(starterDocument), 0644); err != nil {
		return fmt.Errorf("writing starter document: %w", err)
	}
	fmt.Printf("Created %s\n", cfg.File)
	return nil
}
