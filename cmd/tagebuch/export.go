package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tagebuch/internal/db"
	"tagebuch/internal/model"
	"tagebuch/internal/repository"
	"tagebuch/internal/service"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all entries as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEntryService(func(svc service.EntryService) error {
			entries, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}

			if exportOut == "" {
				return writeEntries(cmd.OutOrStdout(), entries)
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", exportOut, err)
			}
			if err := writeAndClose(f, entries); err != nil {
				return fmt.Errorf("write %s: %w", exportOut, err)
			}
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all entries with the JSON array in file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		entries, err := readEntries(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		return withEntryService(func(svc service.EntryService) error {
			if err := svc.Replace(cmd.Context(), entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d Einträge importiert\n", len(entries))
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func withEntryService(fn func(service.EntryService) error) error {
	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	store := repository.NewEntryStore(repository.NewSlotRepository(dbConn))
	return fn(service.NewEntryService(store))
}

func writeEntries(w io.Writer, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// writeAndClose reports the Close error when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, entries []model.Entry) error {
	if err := writeEntries(wc, entries); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

func readEntries(r io.Reader) ([]model.Entry, error) {
	var entries []model.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

