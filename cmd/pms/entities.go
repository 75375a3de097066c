package main

import (
	"pms/internal/domain"
	"pms/internal/service"

	"github.com/spf13/cobra"
)

// ============================================================================
// city
// ============================================================================

func (a *app) cityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "city",
		Aliases: []string{"cities"},
		Short:   "Manage cities",
	}

	var state, country string
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&state, "state", "", "two-letter state code")
		c.Flags().StringVar(&country, "country", "", "two-letter country code")
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List cities ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cities, err := a.dir.ListCities(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "ID", "NAME", "STATE", "COUNTRY")
			for _, c := range cities {
				t.AddRow(c.ID.String(), c.Name, c.State, c.Country)
			}
			return t.Render()
		},
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.dir.CreateCity(cmd.Context(), domain.CityFields{Name: args[0], State: state, Country: country})
			return err
		},
	}
	addFlags(add)

	update := &cobra.Command{
		Use:   "update ID NAME",
		Short: "Replace the fields of a city",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			_, err = a.dir.UpdateCity(cmd.Context(), id, domain.CityFields{Name: args[1], State: state, Country: country})
			return err
		},
	}
	addFlags(update)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a city, its neighborhoods and their streets; detach its police stations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			return a.dir.DeleteCity(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

// ============================================================================
// neighborhood
// ============================================================================

func (a *app) neighborhoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "neighborhood",
		Aliases: []string{"neighborhoods"},
		Short:   "Manage neighborhoods",
	}

	var city string

	list := &cobra.Command{
		Use:   "list",
		Short: "List neighborhoods ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cityID, err := parseRef("city", city)
			if err != nil {
				return err
			}
			views, err := a.dir.ListNeighborhoodViews(cmd.Context(), cityID)
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "ID", "NAME", "CITY")
			for _, v := range views {
				t.AddRow(v.ID.String(), v.Name, v.City)
			}
			return t.Render()
		},
	}
	list.Flags().StringVar(&city, "city", "", "only neighborhoods of this city ID")

	fields := func(name string) (domain.NeighborhoodFields, error) {
		cityID, err := parseRef("city_id", city)
		return domain.NeighborhoodFields{Name: name, CityID: cityID}, err
	}

	add := &cobra.Command{
		Use:   "add NAME --city ID",
		Short: "Create a neighborhood in a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fields(args[0])
			if err != nil {
				return err
			}
			_, err = a.dir.CreateNeighborhood(cmd.Context(), f)
			return err
		},
	}
	add.Flags().StringVar(&city, "city", "", "city ID")

	update := &cobra.Command{
		Use:   "update ID NAME --city ID",
		Short: "Replace the fields of a neighborhood",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			f, err := fields(args[1])
			if err != nil {
				return err
			}
			_, err = a.dir.UpdateNeighborhood(cmd.Context(), id, f)
			return err
		},
	}
	update.Flags().StringVar(&city, "city", "", "city ID")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a neighborhood and its streets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			return a.dir.DeleteNeighborhood(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

// ============================================================================
// street
// ============================================================================

func (a *app) streetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "street",
		Aliases: []string{"streets"},
		Short:   "Manage streets",
	}

	var neighborhood string

	list := &cobra.Command{
		Use:   "list",
		Short: "List streets ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nbID, err := parseRef("neighborhood", neighborhood)
			if err != nil {
				return err
			}
			views, err := a.dir.ListStreetViews(cmd.Context(), nbID)
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "ID", "NAME", "NEIGHBORHOOD")
			for _, v := range views {
				t.AddRow(v.ID.String(), v.Name, v.Neighborhood)
			}
			return t.Render()
		},
	}
	list.Flags().StringVar(&neighborhood, "neighborhood", "", "only streets of this neighborhood ID")

	fields := func(name string) (domain.StreetFields, error) {
		nbID, err := parseRef("neighborhood_id", neighborhood)
		return domain.StreetFields{Name: name, NeighborhoodID: nbID}, err
	}

	add := &cobra.Command{
		Use:   "add NAME --neighborhood ID",
		Short: "Create a street in a neighborhood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fields(args[0])
			if err != nil {
				return err
			}
			_, err = a.dir.CreateStreet(cmd.Context(), f)
			return err
		},
	}
	add.Flags().StringVar(&neighborhood, "neighborhood", "", "neighborhood ID")

	update := &cobra.Command{
		Use:   "update ID NAME --neighborhood ID",
		Short: "Replace the fields of a street",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			f, err := fields(args[1])
			if err != nil {
				return err
			}
			_, err = a.dir.UpdateStreet(cmd.Context(), id, f)
			return err
		},
	}
	update.Flags().StringVar(&neighborhood, "neighborhood", "", "neighborhood ID")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a street",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			return a.dir.DeleteStreet(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

// ============================================================================
// station
// ============================================================================

func (a *app) stationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "station",
		Aliases: []string{"stations"},
		Short:   "Manage police stations",
	}

	var city, address string

	list := &cobra.Command{
		Use:   "list",
		Short: "List police stations ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cityID, err := parseRef("city", city)
			if err != nil {
				return err
			}
			views, err := a.dir.ListPoliceStationViews(cmd.Context(), cityID)
			if err != nil {
				return err
			}
			return renderStations(cmd, views)
		},
	}
	list.Flags().StringVar(&city, "city", "", "only stations of this city ID")

	fields := func(name string) (domain.PoliceStationFields, error) {
		cityID, err := parseRef("city_id", city)
		return domain.PoliceStationFields{Name: name, CityID: cityID, Address: address}, err
	}
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&city, "city", "", "city ID (omit for a station without a city)")
		c.Flags().StringVar(&address, "address", "", "street address")
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a police station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fields(args[0])
			if err != nil {
				return err
			}
			_, err = a.dir.CreatePoliceStation(cmd.Context(), f)
			return err
		},
	}
	addFlags(add)

	update := &cobra.Command{
		Use:   "update ID NAME",
		Short: "Replace the fields of a police station",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			f, err := fields(args[1])
			if err != nil {
				return err
			}
			_, err = a.dir.UpdatePoliceStation(cmd.Context(), id, f)
			return err
		},
	}
	addFlags(update)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a police station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			return a.dir.DeletePoliceStation(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func renderStations(cmd *cobra.Command, views []service.PoliceStationView) error {
	t := newTable(cmd.OutOrStdout(), "ID", "NAME", "CITY", "ADDRESS")
	for _, v := range views {
		city := v.City
		if city == "" {
			city = "-"
		}
		t.AddRow(v.ID.String(), v.Name, city, v.Address)
	}
	return t.Render()
}
