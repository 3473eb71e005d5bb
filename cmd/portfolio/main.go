package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/cmd/portfolio/ui"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
)

// contentSource resolves which portfolio document a command renders.
type contentSource struct {
	path string
}

// load reads the --content file, else fallback, else the embedded copy.
func (s *contentSource) load(fallback string) (*content.Portfolio, error) {
	path := s.path
	if path == "" {
		path = fallback
	}
	if path == "" {
		return content.Load()
	}
	return content.LoadFile(path)
}

// fromConfig loads with CONTENT_PATH from the environment config as the
// fallback.
func (s *contentSource) fromConfig() (*content.Portfolio, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return s.load(cfg.ContentPath)
}

func main() {
	src := &contentSource{}

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site with a live CI/CD pipeline demo and skills radar",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&src.path, "content", "", "YAML content file (defaults to CONTENT_PATH, then the embedded copy)")

	root.AddCommand(serveCmd(src))
	root.AddCommand(pipelineCmd(src))
	root.AddCommand(radarCmd(src))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMsg("%v", err))
		os.Exit(1)
	}
}
