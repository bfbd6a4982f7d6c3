package cmd

import (
	"fmt"
	"os"

	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/rules"
	"github.com/pk-services/pks/style"
	"github.com/pk-services/pks/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func completionDomains(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	table, err := rules.Load(where.Rules())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return table.Domains(), cobra.ShellCompDirectiveNoFileComp
}

func printRule(cmd *cobra.Command, domain string, rule rules.Rule) {
	cmd.Println(style.New().Bold(true).Foreground(color.Purple).Render(domain))
	cmd.Printf("  %s %s\n", style.Faint("image"), style.Fg(color.Yellow)(rule.Image))
	cmd.Printf("  %s %s\n", style.Faint("link "), style.Fg(color.Yellow)(rule.Link))
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.SetOut(os.Stdout)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the per-domain XPath rules used by the scraper",
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().BoolP("json", "j", false, "Print the rule document")
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every rule",
	Run: func(cmd *cobra.Command, args []string) {
		table := loadRules()

		if lo.Must(cmd.Flags().GetBool("json")) {
			data, err := rules.Marshal(table)
			handleErr(err)
			cmd.Println(string(data))
			return
		}

		for i, domain := range table.Domains() {
			printRule(cmd, domain, table.Get(domain))
			if i < table.Len()-1 {
				cmd.Println()
			}
		}
	},
}

func init() {
	rulesCmd.AddCommand(rulesGetCmd)
}

var rulesGetCmd = &cobra.Command{
	Use:               "get <domain>",
	Short:             "Show the rule of a domain, or the default rule",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionDomains,
	Run: func(cmd *cobra.Command, args []string) {
		printRule(cmd, args[0], loadRules().Get(args[0]))
	},
}

func init() {
	rulesCmd.AddCommand(rulesFindCmd)
}

var rulesFindCmd = &cobra.Command{
	Use:               "find <url>",
	Short:             "Show the rule the scraper applies to a URL",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		printRule(cmd, rules.Suffix(args[0]), loadRules().Find(args[0]))
	},
}

func init() {
	rulesCmd.AddCommand(rulesAddCmd)
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <domain> <image xpath> <link xpath>",
	Short: "Add or replace the rule of a domain",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		table := loadRules()
		table.Add(args[0], args[1], args[2])
		handleErr(rules.Save(where.Rules(), table))

		cmd.Printf("%s saved rule for %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
	},
}

func init() {
	rulesCmd.AddCommand(rulesRemoveCmd)
}

var rulesRemoveCmd = &cobra.Command{
	Use:               "remove <domain>",
	Short:             "Remove the rule of a domain",
	Aliases:           []string{"rm"},
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionDomains,
	Run: func(cmd *cobra.Command, args []string) {
		table := loadRules()
		if !table.Remove(args[0]) {
			handleErr(fmt.Errorf("no removable rule for %s", args[0]))
		}
		handleErr(rules.Save(where.Rules(), table))

		cmd.Printf("%s removed rule for %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
	},
}

func init() {
	rulesCmd.AddCommand(rulesSchemaCmd)
}

var rulesSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the rule document",
	Run: func(cmd *cobra.Command, args []string) {
		printJSON(cmd.OutOrStdout(), rules.Schema())
	},
}

func init() {
	rulesCmd.AddCommand(rulesPathCmd)
}

var rulesPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the rule document",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(where.Rules())
	},
}
