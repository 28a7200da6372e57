package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/eduroot/core/quiz"
)

// quizFile is the layout of a quiz import file.
type quizFile struct {
	Quizzes []quiz.Quiz `yaml:"quizzes"`
}

func (cli *commandLine) newImportQuizzesCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "importquizzes",
		Short: "Create or replace quizzes from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(err, "reading quiz file")
			}
			var qf quizFile
			if err = yaml.Unmarshal(data, &qf); err != nil {
				return errors.Wrap(err, "decoding quiz file")
			}

			for i, qz := range qf.Quizzes {
				if qz, err = cli.quizSvc.Import(cmd.Context(), cli.validate, qz); err != nil {
					return errors.Wrapf(err, "importing quiz #%d", i+1)
				}
				_, _ = fmt.Fprintf(cli.out, "quiz %s imported (%d questions)\n", qz.ID, len(qz.Questions))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "path to the YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
