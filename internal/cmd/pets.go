package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/geia-vip/pet-manager-console/internal/api"
)

var petsCmd = &cobra.Command{
	Use:   "pets",
	Short: "Manage pets",
	Long: `Manage pet records: list with filters and pagination, create,
update, delete, and attach photos.

Examples:
  petconsole pets list --nome rex --page 0 --size 20
  petconsole pets create --nome Rex --raca vira-lata --idade 3
  petconsole pets photo 10 ./rex.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var petsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pets",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		if size == 0 {
			size = a.cfg.List.PageSize
		}
		filter := api.PetFilter{}
		filter.Name, _ = cmd.Flags().GetString("nome")
		filter.Breed, _ = cmd.Flags().GetString("raca")

		result, err := a.pets.List(cmd.Context(), page, size, filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tBREED\tAGE")
		for _, pet := range result.Content {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", pet.ID, pet.Name, pet.Breed, pet.Age)
		}
		w.Flush()

		fmt.Printf("\npage %d/%d, %d total\n", result.Page+1, maxInt(result.PageCount, 1), result.Total)
		return nil
	},
}

var petsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one pet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		pet, err := a.pets.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:    %d\nName:  %s\nBreed: %s\nAge:   %d\n", pet.ID, pet.Name, pet.Breed, pet.Age)
		if pet.Photo != nil {
			fmt.Printf("Photo: %s\n", pet.Photo.URL)
		}
		return nil
	},
}

var petsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a pet",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		payload, err := petPayloadFromFlags(cmd)
		if err != nil {
			return err
		}

		pet, err := a.pets.Create(cmd.Context(), payload)
		if err != nil {
			return err
		}

		fmt.Printf("Created pet %d (%s)\n", pet.ID, pet.Name)
		return nil
	},
}

var petsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a pet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		payload, err := petPayloadFromFlags(cmd)
		if err != nil {
			return err
		}

		pet, err := a.pets.Update(cmd.Context(), id, payload)
		if err != nil {
			return err
		}

		fmt.Printf("Updated pet %d (%s)\n", pet.ID, pet.Name)
		return nil
	},
}

var petsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := a.pets.Delete(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Deleted pet %d\n", id)
		return nil
	},
}

var petsPhotoCmd = &cobra.Command{
	Use:   "photo <id> <file>",
	Short: "Attach a photo to a pet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		file, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer file.Close()

		if err := a.pets.UploadPhoto(cmd.Context(), id, filepath.Base(args[1]), file); err != nil {
			return err
		}

		fmt.Printf("Uploaded %s for pet %d\n", filepath.Base(args[1]), id)
		return nil
	},
}

// petPayloadFromFlags builds the create/update body. All three fields
// are required; the backend rejects partial records.
func petPayloadFromFlags(cmd *cobra.Command) (api.PetPayload, error) {
	name, _ := cmd.Flags().GetString("nome")
	breed, _ := cmd.Flags().GetString("raca")
	age, _ := cmd.Flags().GetInt("idade")

	if name == "" {
		return api.PetPayload{}, fmt.Errorf("--nome is required")
	}
	if breed == "" {
		return api.PetPayload{}, fmt.Errorf("--raca is required")
	}
	if age < 0 {
		return api.PetPayload{}, fmt.Errorf("--idade must not be negative")
	}

	return api.PetPayload{Name: name, Breed: breed, Age: age}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func init() {
	petsListCmd.Flags().Int("page", 0, "page number (zero-based)")
	petsListCmd.Flags().Int("size", 0, "page size (defaults to list.page_size)")
	petsListCmd.Flags().String("nome", "", "filter by name")
	petsListCmd.Flags().String("raca", "", "filter by breed")

	for _, c := range []*cobra.Command{petsCreateCmd, petsUpdateCmd} {
		c.Flags().String("nome", "", "pet name")
		c.Flags().String("raca", "", "pet breed")
		c.Flags().Int("idade", 0, "pet age in years")
	}

	petsCmd.AddCommand(petsListCmd, petsGetCmd, petsCreateCmd, petsUpdateCmd, petsDeleteCmd, petsPhotoCmd)
	rootCmd.AddCommand(petsCmd)
}
