package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/geia-vip/pet-manager-console/internal/api"
)

var tutorsCmd = &cobra.Command{
	Use:   "tutors",
	Short: "Manage tutors",
	Long: `Manage tutor records and the pets linked to them.

Examples:
  petconsole tutors list --nome ana
  petconsole tutors create --nome "Ana Silva" --email ana@example.com
  petconsole tutors link 3 10
  petconsole tutors pets 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var tutorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tutors",
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
		filter := api.TutorFilter{}
		filter.Name, _ = cmd.Flags().GetString("nome")

		result, err := a.tutors.List(cmd.Context(), page, size, filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
		for _, tutor := range result.Content {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", tutor.ID, tutor.Name, tutor.Email, tutor.Phone)
		}
		w.Flush()

		fmt.Printf("\npage %d/%d, %d total\n", result.Page+1, maxInt(result.PageCount, 1), result.Total)
		return nil
	},
}

var tutorsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one tutor",
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

		tutor, err := a.tutors.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:      %d\nName:    %s\nEmail:   %s\nPhone:   %s\nAddress: %s\nCPF:     %s\n",
			tutor.ID, tutor.Name, tutor.Email, tutor.Phone, tutor.Address, tutor.CPF)
		if len(tutor.Pets) > 0 {
			fmt.Println("Pets:")
			for _, pet := range tutor.Pets {
				fmt.Printf("  %d  %s (%s)\n", pet.ID, pet.Name, pet.Breed)
			}
		}
		return nil
	},
}

var tutorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a tutor",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		payload, err := tutorPayloadFromFlags(cmd)
		if err != nil {
			return err
		}

		tutor, err := a.tutors.Create(cmd.Context(), payload)
		if err != nil {
			return err
		}

		fmt.Printf("Created tutor %d (%s)\n", tutor.ID, tutor.Name)
		return nil
	},
}

var tutorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a tutor",
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

		payload, err := tutorPayloadFromFlags(cmd)
		if err != nil {
			return err
		}

		tutor, err := a.tutors.Update(cmd.Context(), id, payload)
		if err != nil {
			return err
		}

		fmt.Printf("Updated tutor %d (%s)\n", tutor.ID, tutor.Name)
		return nil
	},
}

var tutorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tutor",
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

		if err := a.tutors.Delete(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Deleted tutor %d\n", id)
		return nil
	},
}

var tutorsPhotoCmd = &cobra.Command{
	Use:   "photo <id> <file>",
	Short: "Attach a photo to a tutor",
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

		if err := a.tutors.UploadPhoto(cmd.Context(), id, filepath.Base(args[1]), file); err != nil {
			return err
		}

		fmt.Printf("Uploaded %s for tutor %d\n", filepath.Base(args[1]), id)
		return nil
	},
}

var tutorsLinkCmd = &cobra.Command{
	Use:   "link <tutor-id> <pet-id>",
	Short: "Link a pet to a tutor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		tutorID, petID, err := parseLinkArgs(args)
		if err != nil {
			return err
		}

		if err := a.tutors.LinkPet(cmd.Context(), tutorID, petID); err != nil {
			return err
		}

		fmt.Printf("Linked pet %d to tutor %d\n", petID, tutorID)
		return nil
	},
}

var tutorsUnlinkCmd = &cobra.Command{
	Use:   "unlink <tutor-id> <pet-id>",
	Short: "Unlink a pet from a tutor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		tutorID, petID, err := parseLinkArgs(args)
		if err != nil {
			return err
		}

		if err := a.tutors.UnlinkPet(cmd.Context(), tutorID, petID); err != nil {
			return err
		}

		fmt.Printf("Unlinked pet %d from tutor %d\n", petID, tutorID)
		return nil
	},
}

var tutorsPetsCmd = &cobra.Command{
	Use:   "pets <tutor-id>",
	Short: "List the pets linked to a tutor",
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

		pets, err := a.tutors.LinkedPets(cmd.Context(), id)
		if err != nil {
			return err
		}

		if len(pets) == 0 {
			fmt.Println("No linked pets")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tBREED\tAGE")
		for _, pet := range pets {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", pet.ID, pet.Name, pet.Breed, pet.Age)
		}
		return w.Flush()
	},
}

func tutorPayloadFromFlags(cmd *cobra.Command) (api.TutorPayload, error) {
	payload := api.TutorPayload{}
	payload.Name, _ = cmd.Flags().GetString("nome")
	payload.Email, _ = cmd.Flags().GetString("email")
	payload.Phone, _ = cmd.Flags().GetString("telefone")
	payload.Address, _ = cmd.Flags().GetString("endereco")
	payload.CPF, _ = cmd.Flags().GetString("cpf")

	if payload.Name == "" {
		return api.TutorPayload{}, fmt.Errorf("--nome is required")
	}
	if payload.Email == "" {
		return api.TutorPayload{}, fmt.Errorf("--email is required")
	}
	return payload, nil
}

func parseLinkArgs(args []string) (tutorID, petID int64, err error) {
	if tutorID, err = parseID(args[0]); err != nil {
		return 0, 0, err
	}
	if petID, err = parseID(args[1]); err != nil {
		return 0, 0, err
	}
	return tutorID, petID, nil
}

func init() {
	tutorsListCmd.Flags().Int("page", 0, "page number (zero-based)")
	tutorsListCmd.Flags().Int("size", 0, "page size (defaults to list.page_size)")
	tutorsListCmd.Flags().String("nome", "", "filter by name")

	for _, c := range []*cobra.Command{tutorsCreateCmd, tutorsUpdateCmd} {
		c.Flags().String("nome", "", "tutor name")
		c.Flags().String("email", "", "tutor email")
		c.Flags().String("telefone", "", "tutor phone")
		c.Flags().String("endereco", "", "tutor address")
		c.Flags().String("cpf", "", "tutor CPF")
	}

	tutorsCmd.AddCommand(
		tutorsListCmd, tutorsGetCmd, tutorsCreateCmd, tutorsUpdateCmd, tutorsDeleteCmd,
		tutorsPhotoCmd, tutorsLinkCmd, tutorsUnlinkCmd, tutorsPetsCmd,
	)
	rootCmd.AddCommand(tutorsCmd)
}
