package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"draftkeep/pkg/htmltext"
	"draftkeep/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored drafts with age and a content preview",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		keys, err := st.Keys()
		if err != nil {
			return err
		}
		sort.Strings(keys)

		now := time.Now()
		count := 0
		for _, key := range keys {
			if !strings.HasPrefix(key, store.KeyPrefix) {
				continue
			}
			d, err := st.Get(key)
			if err != nil {
				fmt.Printf("%-32s (unreadable: %v)\n", key, err)
				continue
			}
			fmt.Printf("%-32s age %-10s %s\n", key, formatAge(d.Age(now)), preview(d))
			count++
		}
		if count == 0 {
			fmt.Println("No drafts stored.")
		}
		return nil
	},
}

// preview pulls the first non-empty text field out of the draft.
func preview(d *store.Draft) string {
	fields := make([]string, 0, len(d.Data))
	for field := range d.Data {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if s, ok := d.Data[field].(string); ok {
			if snippet := htmltext.Snippet(s, 60); snippet != "" {
				return snippet
			}
		}
	}
	return "(no text content)"
}

func formatAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
