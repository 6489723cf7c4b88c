package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cfg "punctuator/config"
	"punctuator/nlp"
)

type app struct {
	v      *viper.Viper
	conf   *cfg.Root
	log    *logrus.Logger
	tagger nlp.Tagger
}

func newRootCmd(tagger nlp.Tagger) *cobra.Command {
	a := &app{v: cfg.New(), tagger: tagger}
	var configPath string

	root := &cobra.Command{
		Use:           "punctuator",
		Short:         "Prepare punctuation prediction training data",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid by now, runtime errors need no usage dump
			cmd.SilenceUsage = true

			conf, err := cfg.Load(a.v, configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(conf.Log.Level)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			a.conf, a.log = conf, log
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default config/$CONFIG_ENV/config.yaml if present)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	mustBind(a.v, "log.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newCreateDBCmd(a), newTalksCmd(a))
	return root
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

// mustBind lets a changed flag override config file and env values for key.
func mustBind(v *viper.Viper, key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}
