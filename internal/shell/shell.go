// Package shell implements the interactive line shell. All state lives in a
// Session; command handlers receive it explicitly.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"hotels/internal/app"
	"hotels/internal/domain"
)

// Opener resolves a location (path or URL) to a store.
type Opener func(ctx context.Context, location string) (domain.HotelStore, error)

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, arg string) (quit bool, err error)
}

type Session struct {
	hotel    *domain.Hotel
	location string
	open     Opener
	out      io.Writer
	log      zerolog.Logger
	cmds     map[string]command
}

// NewSession starts with a fresh default hotel and no current location.
func NewSession(open Opener, out io.Writer, l zerolog.Logger) *Session {
	s := &Session{hotel: domain.NewDefault(), open: open, out: out, log: l}
	quit := command{usage: "quit", help: "Leave the shell.", run: s.quit}
	s.cmds = map[string]command{
		"load":       {usage: "load LOCATION", help: "Load a hotel snapshot.", run: s.load},
		"save":       {usage: "save [LOCATION]", help: "Save to the current location or to LOCATION.", run: s.save},
		"rename":     {usage: "rename NAME", help: "Change the hotel name.", run: s.rename},
		"address":    {usage: "address [ADDRESS]", help: "Show or change the hotel address.", run: s.address},
		"add_room":   {usage: "add_room NUMBER BEDS", help: "Add a room.", run: s.addRoom},
		"list_rooms": {usage: "list_rooms", help: "List the rooms.", run: s.listRooms},
		"book":       {usage: "book YYYY-MM-DD NIGHTS BEDS", help: "Book a room.", run: s.book},
		"help":       {usage: "help", help: "List commands.", run: s.help},
		"quit":       quit,
		"bye":        quit,
		"exit":       quit,
	}
	return s
}

func (s *Session) Hotel() *domain.Hotel { return s.hotel }
func (s *Session) Location() string     { return s.location }
func (s *Session) Prompt() string       { return fmt.Sprintf("(%s) ", s.hotel.Name) }

// Run reads one command per line until quit or end of input. Store failures
// stop the loop and are returned.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.Prompt())
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		quit, err := s.Exec(ctx, sc.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line.
func (s *Session) Exec(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	name, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, arg = line[:i], line[i:]
	}
	c, ok := s.cmds[name]
	if !ok {
		s.printf("Unknown command: %s\n", name)
		return false, nil
	}
	return c.run(ctx, strings.TrimSpace(arg))
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) load(ctx context.Context, arg string) (bool, error) {
	if arg == "" {
		s.printf("You must give a location to load\n")
		return false, nil
	}
	st, err := s.open(ctx, arg)
	if err != nil {
		s.log.Error().Err(err).Str("location", arg).Msg("open store failed")
		return false, err
	}
	defer st.Close()

	h, err := st.Load(ctx)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		s.printf("Snapshot %q does not exist\n", arg)
		return false, nil
	}
	if err != nil {
		s.log.Error().Err(err).Str("location", arg).Msg("load failed")
		return false, err
	}
	s.hotel, s.location = h, arg
	s.log.Debug().Str("location", arg).Msg("hotel loaded")
	return false, nil
}

func (s *Session) save(ctx context.Context, arg string) (bool, error) {
	loc := arg
	if loc == "" {
		loc = s.location
	}
	if loc == "" {
		s.printf("You must give a location to save your changes\n")
		return false, nil
	}
	st, err := s.open(ctx, loc)
	if err != nil {
		s.log.Error().Err(err).Str("location", loc).Msg("open store failed")
		return false, err
	}
	defer st.Close()

	if err := st.Save(ctx, s.hotel); err != nil {
		s.log.Error().Err(err).Str("location", loc).Msg("save failed")
		return false, err
	}
	s.location = loc
	s.log.Debug().Str("location", loc).Msg("hotel saved")
	return false, nil
}

func (s *Session) rename(_ context.Context, arg string) (bool, error) {
	if arg == "" {
		s.printf("Error: no name given\n")
		return false, nil
	}
	s.hotel.Name = arg
	return false, nil
}

func (s *Session) address(_ context.Context, arg string) (bool, error) {
	if arg != "" {
		s.hotel.Address = arg
		return false, nil
	}
	if s.hotel.Address == "" {
		s.printf("The hotel has no address!\n")
		return false, nil
	}
	s.printf("%s\n", s.hotel.Address)
	return false, nil
}

func (s *Session) addRoom(_ context.Context, arg string) (bool, error) {
	req, err := parseAddRoom(arg)
	if err != nil {
		s.printf("Error: expected a room number followed by a number of beds\n")
		return false, nil
	}
	if err := app.AddRoom(s.hotel, req, s.log); err != nil {
		return false, s.usage(err)
	}
	return false, nil
}

func (s *Session) listRooms(_ context.Context, _ string) (bool, error) {
	return false, app.WriteRoomTable(s.out, s.hotel.Rooms())
}

func (s *Session) book(_ context.Context, arg string) (bool, error) {
	req, err := parseBook(arg)
	if err != nil {
		s.printf("Error: expected a date (YYYY-MM-DD), a number of nights and a number of beds\n")
		return false, nil
	}
	res, err := app.Book(s.hotel, req, s.log)
	if err != nil {
		return false, s.usage(err)
	}
	if res.Booked {
		s.printf("Room booked\n")
	} else {
		s.printf("No free room\n")
	}
	return false, nil
}

func (s *Session) help(_ context.Context, _ string) (bool, error) {
	names := make([]string, 0, len(s.cmds))
	for n := range s.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		c := s.cmds[n]
		if c.usage != n && !strings.HasPrefix(c.usage, n+" ") {
			continue // alias
		}
		s.printf("  %-28s %s\n", c.usage, c.help)
	}
	return false, nil
}

func (s *Session) quit(_ context.Context, _ string) (bool, error) { return true, nil }

// usage prints validation errors and swallows them; anything else is returned.
func (s *Session) usage(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		s.printf("Error: %v\n", err)
		return nil
	}
	return err
}

// splitArgs splits arg with shell quoting rules and requires exactly want fields.
func splitArgs(arg string, want int) ([]string, error) {
	fields, err := shlex.Split(arg)
	if err != nil {
		return nil, err
	}
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d arguments, got %d", want, len(fields))
	}
	return fields, nil
}

func parseAddRoom(arg string) (app.AddRoomRequest, error) {
	fields, err := splitArgs(arg, 2)
	if err != nil {
		return app.AddRoomRequest{}, err
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return app.AddRoomRequest{}, err
	}
	beds, err := strconv.Atoi(fields[1])
	if err != nil {
		return app.AddRoomRequest{}, err
	}
	return app.AddRoomRequest{Number: number, Beds: beds}, nil
}

func parseBook(arg string) (app.BookRequest, error) {
	fields, err := splitArgs(arg, 3)
	if err != nil {
		return app.BookRequest{}, err
	}
	start, err := domain.ParseDate(fields[0])
	if err != nil {
		return app.BookRequest{}, err
	}
	nights, err := strconv.Atoi(fields[1])
	if err != nil {
		return app.BookRequest{}, err
	}
	beds, err := strconv.Atoi(fields[2])
	if err != nil {
		return app.BookRequest{}, err
	}
	return app.BookRequest{Start: start, Duration: nights, Beds: beds}, nil
}
