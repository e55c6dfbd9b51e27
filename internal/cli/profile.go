package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planit-app/planit/internal/api"
	"github.com/planit-app/planit/internal/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := planit.Client.Profile(cmd.Context())
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				// Fall back to the on-device account record.
				acct, aerr := planit.Store.LocalAccount(cmd.Context())
				if aerr == nil && acct != nil {
					fmt.Printf("%s <%s> (local, not logged in)\n", acct.Name, acct.Email)
					return nil
				}
				return fmt.Errorf("not logged in; run `planit login`")
			}
			return err
		}

		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		if img, err := planit.Store.ProfileImage(cmd.Context()); err == nil && img != "" {
			faintColor.Printf("photo: %s\n", img)
		}
		return nil
	},
}

var profileSetFlags struct {
	name   string
	avatar string
	photo  string
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// The photo URI is device-local state, saved regardless of auth.
		if profileSetFlags.photo != "" {
			if err := planit.Store.SetProfileImage(ctx, profileSetFlags.photo); err != nil {
				return err
			}
		}

		if profileSetFlags.name == "" && profileSetFlags.avatar == "" {
			fmt.Println("Saved.")
			return nil
		}

		user, err := planit.Client.UpdateProfile(ctx, profileSetFlags.name, profileSetFlags.avatar)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) && profileSetFlags.name != "" {
				// Unauthenticated: update the local fallback instead.
				acct, _ := planit.Store.LocalAccount(ctx)
				if acct == nil {
					acct = &models.LocalAccount{}
				}
				acct.Name = profileSetFlags.name
				if err := planit.Store.SetLocalAccount(ctx, *acct); err != nil {
					return err
				}
				fmt.Println("Saved locally (not logged in).")
				return nil
			}
			return err
		}

		fmt.Printf("Saved. Hello, %s.\n", user.Name)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileSetFlags.name, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileSetFlags.avatar, "avatar", "", "avatar URL")
	profileSetCmd.Flags().StringVar(&profileSetFlags.photo, "photo", "", "local profile image URI")
	profileCmd.AddCommand(profileSetCmd)
}
