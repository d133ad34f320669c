package commands

import (
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/workflow"
	"docketsearch/lib/serviceutil"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	firstName string
	lastName  string
	dob       string
	court     string
)

func init() {
	flags := nameCmd.Flags()
	flags.StringVarP(&firstName, "first", "f", "", "First name of the participant.")
	flags.StringVarP(&lastName, "last", "l", "", "Last name of the participant.")
	flags.StringVarP(&dob, "dob", "d", "", "Date of birth of the participant (YYYY-MM-DD).")
	flags.StringVar(&court, "court", "both", "The court system to search: CP, MDJ or both.")
	nameCmd.MarkFlagRequired("first")
	rootCmd.AddCommand(nameCmd)
}

func parseNameArgs() (workflow.NameQuery, []docket.System, error) {
	q := workflow.NameQuery{
		First: strings.TrimSpace(firstName),
		Last:  strings.TrimSpace(lastName),
	}
	if q.First == "" {
		return q, nil, fmt.Errorf("a first name is required")
	}
	if dob != "" {
		parsed, err := time.Parse("2006-01-02", dob)
		if err != nil {
			return q, nil, fmt.Errorf("invalid date of birth %q: %w", dob, err)
		}
		q.DOB = parsed
	}
	if court == "" || strings.EqualFold(court, "both") {
		return q, nil, nil
	}
	system, err := docket.ParseSystem(court)
	if err != nil {
		return q, nil, err
	}
	return q, []docket.System{system}, nil
}

var nameCmd = &cobra.Command{
	Use:   "name -f <first> [-l <last>] [-d <YYYY-MM-DD>] [--court CP|MDJ|both]",
	Short: "Searches for a participant by name in both court systems at once.",
	Run: func(cmd *cobra.Command, args []string) {
		q, systems, err := parseNameArgs()
		if err != nil {
			serviceutil.Fatal("invalid arguments", err)
		}
		found, errs := newSearcher().SearchName(cmd.Context(), q, systems...)
		printNameResults(found, errs)
	},
}
