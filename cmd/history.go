package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"querybench/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past generate/estimate/bench runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open("")
		if err != nil {
			return err
		}
		defer store.Close()

		items := store.List()
		if len(items) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tSOURCE\tRECORDS\tFILE\tID")
		for _, item := range items {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
				item.Timestamp.Format("2006-01-02 15:04:05"),
				item.Source,
				item.Summary.Records,
				item.DataFile,
				item.ID,
			)
		}
		return tw.Flush()
	},
}
