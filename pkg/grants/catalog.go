package grants

import (
	"errors"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RoleDef describes one assignable role in the catalog.
type RoleDef struct {
	// Permissions granted by the role. Informational for now; role
	// checks in this kit are name-based.
	Permissions []string `yaml:"permissions"`

	// Assignable marks roles that the general assign-role operation may
	// hand out. The owner role is catalogued but never assignable.
	Assignable bool `yaml:"assignable"`
}

// Catalog is the set of role names a deployment recognises. Actions
// validate requested role names against it before granting, so a typo in
// a request can never mint a brand-new role.
type Catalog struct {
	roles map[string]RoleDef
}

// catalogFile is the YAML shape of a role catalog:
//
//	roles:
//	  admin:
//	    assignable: true
//	    permissions: ["tenant.update", "members.manage"]
type catalogFile struct {
	Roles map[string]RoleDef `yaml:"roles"`
}

// DefaultCatalog returns the built-in role set: owner (not assignable),
// admin, manager and member.
func DefaultCatalog() *Catalog {
	return &Catalog{roles: map[string]RoleDef{
		RoleOwner:   {Permissions: []string{"*"}, Assignable: false},
		RoleAdmin:   {Permissions: []string{"tenant.update", "members.manage"}, Assignable: true},
		RoleManager: {Permissions: []string{"members.view"}, Assignable: true},
		RoleMember:  {Permissions: nil, Assignable: true},
	}}
}

// LoadCatalog parses a role catalog from YAML.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	if len(f.Roles) == 0 {
		return nil, errors.Join(ErrInvalidCatalog, errors.New("no roles defined"))
	}
	for name := range f.Roles {
		if name == "" {
			return nil, errors.Join(ErrInvalidCatalog, ErrEmptyRole)
		}
	}
	return &Catalog{roles: f.Roles}, nil
}

// LoadCatalogFile reads a role catalog from a YAML file on disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Has reports whether the role exists in the catalog.
func (c *Catalog) Has(role string) bool {
	_, ok := c.roles[role]
	return ok
}

// Assignable reports whether the role may be handed out by the general
// assign-role operation.
func (c *Catalog) Assignable(role string) bool {
	def, ok := c.roles[role]
	return ok && def.Assignable
}

// Permissions returns the permissions attached to the role.
func (c *Catalog) Permissions(role string) []string {
	def, ok := c.roles[role]
	if !ok {
		return nil
	}
	return slices.Clone(def.Permissions)
}

// Roles returns all catalogued role names, sorted.
func (c *Catalog) Roles() []string {
	names := make([]string, 0, len(c.roles))
	for name := range c.roles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Verify returns ErrUnknownRole when the role is not catalogued.
func (c *Catalog) Verify(role string) error {
	if role == "" {
		return ErrEmptyRole
	}
	if !c.Has(role) {
		return ErrUnknownRole
	}
	return nil
}
