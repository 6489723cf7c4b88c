package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"punctuator/nlp"
	"punctuator/talks"
)

func newTalksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "talks <xml_file> <template_file>",
		Short: "Parse talks and align them with their transcripts",
		Long: `Parse the talks in xml_file, tag every sentence and merge the
matching transcript into each talk.

  xml_file:      XML file containing talks.
  template_file: Template file path to sorted_txt transcript file. Contains
                 <id> for talk id, which will be replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.parseTalks(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], args[1])
		},
	}

	cmd.Flags().String("format", "", "output format (text, json, yaml)")
	cmd.Flags().Bool("strict", false, "fail when a transcript has a different line count than its talk")
	mustBind(a.v, "talks.format", cmd.Flags().Lookup("format"))
	mustBind(a.v, "talks.strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func (a *app) parseTalks(out, errOut io.Writer, xmlPath, template string) error {
	if fi, err := os.Stat(xmlPath); err != nil || !fi.Mode().IsRegular() {
		fmt.Fprintln(errOut, "No valid input xml file!")
		return nil
	}

	p := talks.NewParser(
		nlp.NewPipeline(a.tagger),
		talks.WithStrictAlignment(a.conf.Talks.Strict),
		talks.WithLogger(a.log),
	)
	ts, err := p.ParseDocument(xmlPath, template)
	if err != nil {
		return err
	}
	a.log.WithField("talks", len(ts)).Info("document parsed")

	return talks.Encode(out, a.conf.Talks.Format, ts)
}
