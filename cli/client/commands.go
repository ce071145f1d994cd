package client

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oaiiae/contactbook/model"
	"github.com/oaiiae/contactbook/query"
	"github.com/oaiiae/contactbook/validation"
)

// Commands returns the client subcommands. newApp is called once the
// global options are parsed.
func Commands(newApp func(out io.Writer) (*App, error)) []*cobra.Command {
	return []*cobra.Command{
		listCmd(newApp),
		addCmd(newApp),
		editCmd(newApp),
		deleteCmd(newApp),
		exportCmd(newApp),
		groupsCmd(newApp),
	}
}

func filterFlags(cmd *cobra.Command, f *Filter) {
	cmd.Flags().Int64VarP(&f.Group, "group", "g", 0, "only contacts tagged with this group id")
	cmd.Flags().StringVarP(&f.Keywords, "search", "s", "", "only contacts whose first or last name contain every keyword")
}

func listCmd(newApp func(io.Writer) (*App, error)) *cobra.Command {
	var (
		f          Filter
		page, size int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.LogMetrics(cmd.Context())
			return app.List(cmd.Context(), f, page, size)
		},
	}
	filterFlags(cmd, &f)
	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().IntVar(&size, "page-size", query.DefaultPageSize, fmt.Sprintf("rows per page, one of %v", query.PageSizes))
	return cmd
}

// contactForm binds the contact fields to flags.
type contactForm struct {
	contact model.Contact
	groups  []int64
}

func (form *contactForm) flags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&form.contact.FirstName, "first-name", "", "first name")
	fs.StringVar(&form.contact.LastName, "last-name", "", "last name")
	fs.StringVar(&form.contact.Country, "country", "", "country")
	fs.StringVar(&form.contact.City, "city", "", "city")
	fs.StringVar(&form.contact.Street, "street", "", "street")
	fs.StringVar(&form.contact.Zipcode, "zipcode", "", "zipcode")
	fs.StringVar(&form.contact.Phone, "phone", "", "phone number, digits only")
	fs.StringVar(&form.contact.Email, "email", "", "email address")
	fs.Int64SliceVar(&form.groups, "group", nil, "id of a group to tag the contact with, repeatable")
}

// apply overlays the flags that were set on c.
func (form *contactForm) apply(cmd *cobra.Command, app *App, c *model.Contact) error {
	fields := []struct {
		flag string
		dst  *string
		src  string
	}{
		{"first-name", &c.FirstName, form.contact.FirstName},
		{"last-name", &c.LastName, form.contact.LastName},
		{"country", &c.Country, form.contact.Country},
		{"city", &c.City, form.contact.City},
		{"street", &c.Street, form.contact.Street},
		{"zipcode", &c.Zipcode, form.contact.Zipcode},
		{"phone", &c.Phone, form.contact.Phone},
		{"email", &c.Email, form.contact.Email},
	}
	for _, f := range fields {
		if cmd.Flags().Changed(f.flag) {
			*f.dst = f.src
		}
	}
	if cmd.Flags().Changed("group") {
		refs, err := app.Store.GroupRefs(form.groups)
		if err != nil {
			return err
		}
		c.Groups = refs
	}
	return nil
}

func save(cmd *cobra.Command, app *App, c model.Contact, id model.ContactID) error {
	saved, err := app.Store.SaveContact(cmd.Context(), c, id)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for _, field := range slices.Sorted(maps.Keys(verrs)) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, verrs[field])
		}
		return errors.New("invalid contact")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "contact %d saved\n", saved.ID)
	return nil
}

func addCmd(newApp func(io.Writer) (*App, error)) *cobra.Command {
	form := &contactForm{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.LogMetrics(cmd.Context())
			if cmd.Flags().Changed("group") {
				if err := app.Store.RefreshGroups(cmd.Context()); err != nil {
					return err
				}
			}
			var c model.Contact
			if err := form.apply(cmd, app, &c); err != nil {
				return err
			}
			return save(cmd, app, c, 0)
		},
	}
	form.flags(cmd)
	return cmd
}

func editCmd(newApp func(io.Writer) (*App, error)) *cobra.Command {
	form := &contactForm{}
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a contact, only the given fields change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.LogMetrics(cmd.Context())
			if err := app.Load(cmd.Context()); err != nil {
				return err
			}
			c, ok := app.Contact(id)
			if !ok {
				return fmt.Errorf("contact %d not found", id)
			}
			if err := form.apply(cmd, app, &c); err != nil {
				return err
			}
			return save(cmd, app, c, id)
		},
	}
	form.flags(cmd)
	return cmd
}

func deleteCmd(newApp func(io.Writer) (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete contacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]model.ContactID, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			app, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.LogMetrics(cmd.Context())
			return app.Store.DeleteContacts(cmd.Context(), ids)
		},
	}
}

func exportCmd(newApp func(io.Writer) (*App, error)) *cobra.Command {
	var (
		f      Filter
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export contacts as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.LogMetrics(cmd.Context())
			if output == "" || output == "-" {
				return app.Export(cmd.Context(), f, cmd.OutOrStdout())
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			err = app.Export(cmd.Context(), f, file)
			return errors.Join(err, file.Close())
		},
	}
	filterFlags(cmd, &f)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func groupsCmd(newApp func(io.Writer) (*App, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage groups",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List groups",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := newApp(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				defer app.LogMetrics(cmd.Context())
				return app.ListGroups(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "add NAME",
			Short: "Create a group",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				defer app.LogMetrics(cmd.Context())
				group, err := app.Store.SaveGroup(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "group %d saved\n", group.ID)
				return nil
			},
		},
	)
	return cmd
}

func parseID(s string) (model.ContactID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
