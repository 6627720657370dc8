package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/opencustoms/boe-copilot/internal/catalog"
	"github.com/opencustoms/boe-copilot/internal/config"
	"github.com/opencustoms/boe-copilot/internal/database"
	"github.com/opencustoms/boe-copilot/internal/profile"
)

var db *gorm.DB

func main() {
	rootCmd := &cobra.Command{
		Use:   "boectl",
		Short: "Manage the BoE co-pilot reference data",
		Long:  "boectl manages the product catalog and importer profile used by checklist verification.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to load .env file: %w", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err = database.New(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return database.Close(db)
		},
	}

	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newProfileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Import or export the product catalog",
	}

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace the catalog with the entries in a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			entries, err := catalog.ParseCSV(f)
			if err != nil {
				return err
			}

			store, err := catalog.NewStore(db)
			if err != nil {
				return err
			}
			if err := store.Replace(cmd.Context(), entries); err != nil {
				return err
			}
			fmt.Printf("imported %d catalog entries\n", len(entries))
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export the catalog to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.NewStore(db)
			if err != nil {
				return err
			}
			entries, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()

			if err := catalog.WriteCSV(f, entries); err != nil {
				return err
			}
			fmt.Printf("exported %d catalog entries\n", len(entries))
			return nil
		},
	}

	catalogCmd.AddCommand(importCmd)
	catalogCmd.AddCommand(exportCmd)
	return catalogCmd
}

func newProfileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set the saved importer profile",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved importer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profile.NewStore(db)
			if err != nil {
				return err
			}
			saved, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if saved == nil {
				fmt.Println("no importer profile saved")
				return nil
			}
			fmt.Printf("Importer Name: %s\n", saved.ImporterName)
			fmt.Printf("IEC Number:    %s\n", saved.IECNumber)
			fmt.Printf("GSTIN:         %s\n", saved.GSTIN)
			fmt.Printf("AD Code:       %s\n", saved.ADCode)
			return nil
		},
	}

	var name, iec, gstin, adCode string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Save the importer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profile.NewStore(db)
			if err != nil {
				return err
			}
			saved := &profile.ImporterProfile{
				ImporterName: name,
				IECNumber:    iec,
				GSTIN:        gstin,
				ADCode:       adCode,
			}
			if err := store.Save(cmd.Context(), saved); err != nil {
				return err
			}
			fmt.Println("importer profile saved")
			return nil
		},
	}
	setCmd.Flags().StringVar(&name, "importer-name", "", "importer legal name")
	setCmd.Flags().StringVar(&iec, "iec", "", "import-export code")
	setCmd.Flags().StringVar(&gstin, "gstin", "", "GST identification number")
	setCmd.Flags().StringVar(&adCode, "ad-code", "", "authorized dealer code")

	profileCmd.AddCommand(showCmd)
	profileCmd.AddCommand(setCmd)
	return profileCmd
}
