package main

import (
	"strings"

	"github.com/jacksmith/menu/internal/model"
	"github.com/jacksmith/menu/internal/storage"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for menu.

Bash:
  $ source <(menu completion bash)

Zsh:
  $ menu completion zsh > "${fpath[1]}/_menu"

Fish:
  $ menu completion fish | source
`,
}

func init() {
	shells := []struct {
		name string
		gen  func(cmd *cobra.Command) error
	}{
		{"bash", func(cmd *cobra.Command) error { return rootCmd.GenBashCompletionV2(stdout, true) }},
		{"zsh", func(cmd *cobra.Command) error { return rootCmd.GenZshCompletion(stdout) }},
		{"fish", func(cmd *cobra.Command) error { return rootCmd.GenFishCompletion(stdout, true) }},
	}
	for _, sh := range shells {
		gen := sh.gen
		completionCmd.AddCommand(&cobra.Command{
			Use:   sh.name,
			Short: "Generate " + sh.name + " completion script",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return gen(cmd)
			},
		})
	}
	rootCmd.AddCommand(completionCmd)
}

// completeProductIDs offers product IDs, described by name. It reads the
// catalog directly so completion never logs or warns.
func completeProductIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := storage.Open(rootDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	backend, err := s.OpenBackend()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer backend.Close()

	data, err := backend.Read()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cf, err := model.DecodeCatalog(data)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	prefix := strings.ToUpper(toComplete)
	var out []string
	for _, p := range cf.Products {
		if strings.HasPrefix(strings.ToUpper(p.ID), prefix) {
			out = append(out, p.ID+"\t"+p.Name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeCategories offers the category names.
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, c := range model.Categories {
		if strings.HasPrefix(string(c), strings.ToLower(toComplete)) {
			out = append(out, string(c)+"\t"+c.Title())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
