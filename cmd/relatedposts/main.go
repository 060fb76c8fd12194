// Command relatedposts 在命令行里计算相关文章、查看文章标签，
// 并把文章快照导入 Redis 供后续查询。
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	postsPath  string
	redisAddr  string
	redisDB    int
	keyPrefix  string
	configPath string
	timeout    time.Duration

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "relatedposts",
	Short: "Rank related posts for a blog",
	Long: `relatedposts ranks the posts most related to a target post.

Posts are read from a JSON file (--posts) or from a Redis snapshot
written by "relatedposts import" (--redis-addr).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var relatedCmd = &cobra.Command{
	Use:   "related",
	Short: "Print the posts related to --target",
	Args:  cobra.NoArgs,
	RunE:  runRelated,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print display tags for every post, or the sitewide tag set with --distinct",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import posts from --posts into Redis",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

var (
	targetID string
	limit    int
	explain  bool
	distinct bool
	maxTags  int
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&postsPath, "posts", "", "JSON file holding an array of posts")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", "", "Redis address, e.g. localhost:6379")
	rootCmd.PersistentFlags().IntVar(&redisDB, "redis-db", 0, "Redis database")
	rootCmd.PersistentFlags().StringVar(&keyPrefix, "prefix", "posts", "Redis key prefix")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	relatedCmd.Flags().StringVar(&targetID, "target", "", "Target post id (required)")
	relatedCmd.Flags().IntVar(&limit, "limit", -1, "Maximum number of results (default from config)")
	relatedCmd.Flags().StringVar(&configPath, "config", "", "Ranker YAML config")
	relatedCmd.Flags().BoolVar(&explain, "explain", false, "Print scores and labels")
	_ = relatedCmd.MarkFlagRequired("target")

	tagsCmd.Flags().BoolVar(&distinct, "distinct", false, "Print the distinct tag set only")
	tagsCmd.Flags().IntVar(&maxTags, "max-tags", 0, "Maximum tags per post (default 3)")

	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
