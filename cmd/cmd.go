package cmd

import (
	"os"

	"github.com/Nrich-sunny/honorcrawler/cmd/crawl"
	"github.com/Nrich-sunny/honorcrawler/config"
	"github.com/Nrich-sunny/honorcrawler/version"
	"github.com/spf13/cobra"
)

var crawlFlags crawl.Flags

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "crawl faculty pages and classify honors.",
	Long:  "crawl faculty directories of every registered site, fetch each profile page and write one honor line per teacher.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return crawl.Run(crawlFlags)
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "list registered sites.",
	Long:  "list registered sites.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return crawl.ListSites(crawlFlags.ConfigPath, cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version.",
	Long:  "print version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.Printer()
	},
}

func NewRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:          "honorcrawler",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&crawlFlags.ConfigPath, "config", config.DefaultPath, "set config file path")
	rootCmd.AddCommand(crawlCmd, sitesCmd, versionCmd)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	crawlCmd.Flags().IntVar(&crawlFlags.Workers, "workers", 0, "set worker count")
	crawlCmd.Flags().StringSliceVar(&crawlFlags.Sites, "sites", nil, "only crawl these sites")
	crawlCmd.Flags().StringVar(&crawlFlags.Output, "output", "", "set result file path")
	crawlCmd.Flags().StringVar(&crawlFlags.Log, "log", "", "set log file path")
	crawlCmd.Flags().StringVar(&crawlFlags.Diag, "diag", "", "set json diagnostic log path")
	crawlCmd.Flags().BoolVar(&crawlFlags.Stable, "stable", false, "write results in listing order")
}
