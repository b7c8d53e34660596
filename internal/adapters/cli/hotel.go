package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hotels/internal/app"
	"hotels/internal/domain"
	"hotels/internal/shell"
)

func newHotelCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotel",
		Short: "Manage the hotel's details and rooms",
	}
	cmd.AddCommand(newUpdateCommand(rt), newDisplayCommand(rt), newAddRoomCommand(rt))
	return cmd
}

func newUpdateCommand(rt *runtime) *cobra.Command {
	var name, address string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the hotel's name or address",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withService(cmd.Context(), func(s *app.Service) error {
				return s.Update(cmd.Context(), name, address)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new hotel name")
	cmd.Flags().StringVar(&address, "address", "", "new hotel address")
	return cmd
}

func newDisplayCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "Print the hotel's details and rooms",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withService(cmd.Context(), func(s *app.Service) error {
				return s.Display(cmd.Context(), cmd.OutOrStdout())
			})
		},
	}
}

func newAddRoomCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "add-room NUMBER BEDS",
		Short: "Add a room to the hotel",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return usagef("room number must be an integer, got %q", args[0])
			}
			beds, err := strconv.Atoi(args[1])
			if err != nil {
				return usagef("number of beds must be an integer, got %q", args[1])
			}
			req := app.AddRoomRequest{Number: number, Beds: beds}
			return rt.withService(cmd.Context(), func(s *app.Service) error {
				return s.AddRoom(cmd.Context(), req)
			})
		},
	}
}

func newBookCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "book DATE DURATION BEDS",
		Short: "Book a room from DATE (YYYY-MM-DD) for DURATION nights",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := domain.ParseDate(args[0])
			if err != nil {
				return &usageError{err: err}
			}
			duration, err := strconv.Atoi(args[1])
			if err != nil {
				return usagef("duration must be an integer, got %q", args[1])
			}
			beds, err := strconv.Atoi(args[2])
			if err != nil {
				return usagef("number of beds must be an integer, got %q", args[2])
			}
			req := app.BookRequest{Start: start, Duration: duration, Beds: beds}
			return rt.withService(cmd.Context(), func(s *app.Service) error {
				res, err := s.Book(cmd.Context(), req)
				if err != nil {
					return err
				}
				if res.Booked {
					fmt.Fprintln(cmd.OutOrStdout(), "Room booked")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "No free room")
				}
				return nil
			})
		},
	}
}

func newShellCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := shell.NewSession(rt.open, cmd.OutOrStdout(), rt.log)
			return s.Run(cmd.Context(), cmd.InOrStdin())
		},
	}
}
