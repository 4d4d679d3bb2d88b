package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sawyer-Powell/mont/internal/store"
	"github.com/Sawyer-Powell/mont/internal/vcs"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var (
	tasksDir   string
	jsonOutput bool

	// taskStore is opened by PersistentPreRun for every command that
	// needs the tasks directory.
	taskStore *store.Store
)

var rootCmd = &cobra.Command{
	Use:   "mont",
	Short: "mont - dependency-aware task manager",
	Long: `Tasks as markdown records chained into a dependency graph.
Records live in a .tasks directory; mont validates the graph, tracks
gates, and renders the DAG in your terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("mont version %s\n", Version)
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if isNoStoreCommand(cmd) {
			return
		}
		s, err := store.Open(tasksDir)
		if err != nil {
			fatal(err)
		}
		taskStore = s
	},
}

// noStoreCommands run without an existing tasks directory.
var noStoreCommands = map[string]bool{
	"init":       true,
	"version":    true,
	"help":       true,
	"completion": true,
}

func isNoStoreCommand(cmd *cobra.Command) bool {
	return noStoreCommands[cmd.Name()]
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// snapshot commits the tasks directory after a successful mutation when
// vcs integration is enabled. Failures warn rather than abort: the
// records themselves are already safely written.
func snapshot(message string) {
	if taskStore == nil || !taskStore.Config().VCS.Enabled {
		return
	}
	if err := vcs.New(taskStore.Dir()).Snapshot(message); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: vcs snapshot failed: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tasksDir, "dir", store.DefaultDir, "Tasks directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON where supported")
	rootCmd.Flags().BoolP("version", "v", false, "Print version")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
