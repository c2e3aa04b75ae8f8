package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kevin-chtw/tw_mahjong/game"
	"github.com/kevin-chtw/tw_mahjong/mahjong"
	"github.com/kevin-chtw/tw_mahjong/storage"
	"github.com/kevin-chtw/tw_mahjong/utils"
)

const (
	exitBadInput   = 2
	exitDependency = 3
)

// Config 可选的 YAML 配置；环境变量 TWMJ_ 前缀覆盖。
type Config struct {
	Database string   `mapstructure:"database"`
	Ruleset  string   `mapstructure:"ruleset"`
	Players  []string `mapstructure:"players"`
}

var (
	cfgFile string
	cfg     Config
)

func loadConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetDefault("database", "twmj.db")
	v.SetDefault("ruleset", "Classical Chinese DMJL")
	v.SetDefault("players", []string{"East", "South", "West", "North"})
	v.SetEnvPrefix("TWMJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	} else {
		v.SetConfigName("twmj")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return err
			}
		}
	}
	return v.Unmarshal(&cfg)
}

// resolveRuleset 命令行覆盖配置里的默认规则集。
func resolveRuleset(args []string, pos int) *mahjong.Ruleset {
	name := cfg.Ruleset
	if len(args) > pos {
		name = args[pos]
	}
	rs := mahjong.PredefinedRuleset(name)
	if rs == nil {
		fmt.Fprintf(os.Stderr, "unknown ruleset %q; available:\n", name)
		for _, r := range mahjong.PredefinedRulesets() {
			fmt.Fprintf(os.Stderr, "  %s\n", r.Name)
		}
		os.Exit(exitBadInput)
	}
	return rs
}

var rootCmd = &cobra.Command{
	Use:               "twmj",
	Short:             "four player mah jongg scoring engine",
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

var scoreCmd = &cobra.Command{
	Use:   "score <hand> [ruleset]",
	Short: "score a hand string and list the applied rules",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		rs := resolveRuleset(args, 1)
		h, err := mahjong.NewHand(rs, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitBadInput)
		}
		fmt.Printf("%s\n", h)
		fmt.Printf("won: %v  total: %d  (%s)\n", h.Won(), h.Total(), h.Score())
		for _, ur := range h.UsedRules() {
			fmt.Printf("  %s (%s)\n", ur.Rule.Name, ur.Rule.Score)
		}
	},
}

var callCmd = &cobra.Command{
	Use:   "call <hand> [ruleset]",
	Short: "print the winning tiles of a calling hand",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		rs := resolveRuleset(args, 1)
		h, err := mahjong.NewHand(rs, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitBadInput)
		}
		tiles := h.WinningTiles()
		if len(tiles) == 0 {
			fmt.Println("not calling")
			return
		}
		fmt.Println(tiles)
	},
}

var playCmd = &cobra.Command{
	Use:   "play <seed> [ruleset]",
	Short: "autoplay a full game and write the score rows",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		seed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad seed %q\n", args[0])
			os.Exit(exitBadInput)
		}
		rs := resolveRuleset(args, 1)

		var names [4]string
		for i := range names {
			names[i] = fmt.Sprintf("Robot %d", i+1)
			if i < len(cfg.Players) {
				names[i] = cfg.Players[i]
			}
		}
		g := game.NewGame(rs, seed, names)

		store, err := storage.Open(cfg.Database)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitDependency)
		}
		defer store.Close()
		if err := store.StartGame(g, true); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitDependency)
		}
		g.SetRecorder(store)

		g.Run()

		for _, result := range g.History() {
			fmt.Printf("%s winner=%s\n", result.Point.String(), windName(result.Winner))
			for _, ps := range result.Scores {
				fmt.Printf("  %-12s %c %5d points  payment %6d  balance %6d\n",
					ps.Name, ps.Wind.WindChar(), ps.Points, ps.Payment, ps.Balance)
			}
		}
		if err := store.FinishGame(g); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitDependency)
		}
	},
}

func windName(w mahjong.Tile) string {
	if w == mahjong.TileNull {
		return "nobody"
	}
	return string(w.WindChar())
}

func main() {
	utils.InitStandardLogger(logrus.InfoLevel)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./twmj.yaml)")
	rootCmd.AddCommand(scoreCmd, callCmd, playCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitBadInput)
	}
}
