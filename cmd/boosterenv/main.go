package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/boosterenv/internal/config"
	"github.com/san-kum/boosterenv/internal/env"
	"github.com/san-kum/boosterenv/internal/metrics"
	"github.com/san-kum/boosterenv/internal/policy"
	"github.com/san-kum/boosterenv/internal/rollout"
	"github.com/san-kum/boosterenv/internal/storage"
	"github.com/san-kum/boosterenv/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	policyName string
	seed       uint64
	episodes   int
	frameRate  int
	kp         float64
	ki         float64
	kd         float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boosterenv",
		Short: "booster landing simulation environment",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".boosterenv", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run scripted-policy episodes",
		RunE:  runEpisodes,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "env.yaml path")
	runCmd.Flags().StringVar(&preset, "preset", "drop", "preset configuration")
	runCmd.Flags().StringVar(&policyName, "policy", "burn", "scripted policy (none, hover, burn)")
	runCmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	runCmd.Flags().IntVar(&episodes, "episodes", 1, "number of episodes")
	runCmd.Flags().Float64Var(&kp, "kp", 0, "hover pid kp")
	runCmd.Flags().Float64Var(&ki, "ki", 0, "hover pid ki")
	runCmd.Flags().Float64Var(&kd, "kd", 0, "hover pid kd")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a descent live in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "env.yaml path")
	liveCmd.Flags().StringVar(&preset, "preset", "drop", "preset configuration")
	liveCmd.Flags().StringVar(&policyName, "policy", "burn", "scripted policy")
	liveCmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [env.yaml] [train.yaml]",
		Short: "validate configuration files",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  validateConfigs,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.EnvConfig, error) {
	if configFile != "" {
		return config.LoadEnv(configFile)
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	return cfg, nil
}

func makePolicy(cfg *config.EnvConfig) (policy.Policy, error) {
	params := map[string]float64{
		"kp":           kp,
		"ki":           ki,
		"kd":           kd,
		"thrust_accel": cfg.Physics.MainPower,
		"gravity":      cfg.Physics.Gravity,
	}
	return policy.NewRegistry().Get(policyName, params)
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := time.Now()

	if episodes > 1 {
		ens := rollout.NewEnsemble(
			func(s uint64) (*env.Environment, error) { return env.New(cfg, s) },
			func() policy.Policy {
				pol, err := makePolicy(cfg)
				if err != nil {
					return policy.None{}
				}
				return pol
			},
			episodes, seed,
		)
		results, err := ens.Run(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("episodes: %d  success rate: %.0f%%  elapsed: %v\n",
			len(results), 100*rollout.SuccessRate(results), time.Since(start))
		for i, r := range results {
			fmt.Printf("  #%d  steps=%d reward=%.2f outcome=%s\n", i, r.Steps, r.TotalReward, r.Outcome)
		}
		return nil
	}

	environment, err := env.New(cfg, seed)
	if err != nil {
		return err
	}
	defer environment.Close()

	if cfg.Render {
		environment.SetRenderer(viz.NewConsole(os.Stdout, 50))
	}

	pol, err := makePolicy(cfg)
	if err != nil {
		return err
	}

	runner := rollout.New(environment, pol)
	for _, m := range metrics.Defaults(cfg.Limits.LandingTilt) {
		runner.AddMetric(m)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(policyName, cfg.RewardVersion, seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Printf("outcome: %s (%s)\n", result.Outcome, result.Reason)
	fmt.Printf("total reward: %.3f\n", result.TotalReward)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	environment, err := env.New(cfg, seed)
	if err != nil {
		return err
	}
	defer environment.Close()

	pol, err := makePolicy(cfg)
	if err != nil {
		return err
	}

	return viz.RunLive(environment, pol, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPOLICY\tREWARD_VER\tSTEPS\tREWARD\tOUTCOME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Policy,
			run.RewardVersion,
			run.Steps,
			run.TotalReward,
			run.Outcome,
		)
	}
	return w.Flush()
}

var plotVars = []struct {
	col     int
	caption string
}{
	{1, "altitude (m)"},
	{3, "vertical velocity (m/s)"},
	{4, "pitch (rad)"},
	{6, "fuel ratio"},
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, rewards, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("policy: %s  outcome: %s\n", meta.Policy, meta.Outcome)
	fmt.Printf("samples: %d\n\n", len(rows))

	for _, pv := range plotVars {
		data := make([]float64, len(rows))
		for i := range rows {
			data[i] = rows[i][pv.col]
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(pv.caption),
		))
		fmt.Println()
	}

	fmt.Println(asciigraph.Plot(rewards,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("reward per step"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func validateConfigs(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(args[0]); err != nil {
		return fmt.Errorf("env config: %w", err)
	}
	fmt.Printf("%s: ok\n", args[0])

	if len(args) == 2 {
		if _, err := config.LoadTrain(args[1]); err != nil {
			return fmt.Errorf("train config: %w", err)
		}
		fmt.Printf("%s: ok\n", args[1])
	}
	return nil
}
