package commands

import (
	"path/filepath"

	"git.home.luguber.info/inful/docreports/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	configPath := root.Config
	if i.Output != "" {
		configPath = filepath.Join(i.Output, config.DefaultFile)
	}

	g.printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, i.Force); err != nil {
		g.printf("Initialization failed\n")
		return err
	}
	g.printf("initialized successfully\n")
	return nil
}
