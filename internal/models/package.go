package models

import (
	"fmt"
	"strings"
)

// Package represents one entry of a pacman sync database
type Package struct {
	// Core metadata
	Name        string `json:"name" yaml:"name"`
	Base        string `json:"base,omitempty" yaml:"base,omitempty"`
	Filename    string `json:"filename" yaml:"filename"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"desc" yaml:"desc"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`

	// File information
	Size          uint64 `json:"csize" yaml:"csize"`
	InstalledSize uint64 `json:"isize" yaml:"isize"`
	Architecture  string `json:"arch" yaml:"arch"`
	MD5Sum        string `json:"md5sum,omitempty" yaml:"md5sum,omitempty"`
	SHA256Sum     string `json:"sha256sum,omitempty" yaml:"sha256sum,omitempty"`
	PGPSig        string `json:"pgpsig,omitempty" yaml:"pgpsig,omitempty"`
	BuildDate     string `json:"builddate,omitempty" yaml:"builddate,omitempty"`
	Packager      string `json:"packager,omitempty" yaml:"packager,omitempty"`

	// Relations, in declaration order
	Licenses        []string `json:"licenses,omitempty" yaml:"licenses,omitempty"`
	Provides        []string `json:"provides,omitempty" yaml:"provides,omitempty"`
	Depends         []string `json:"depends,omitempty" yaml:"depends,omitempty"`
	MakeDepends     []string `json:"makedepends,omitempty" yaml:"makedepends,omitempty"`
	OptionalDepends []string `json:"optionaldepends,omitempty" yaml:"optionaldepends,omitempty"`
	CheckDepends    []string `json:"checkdepends,omitempty" yaml:"checkdepends,omitempty"`
}

// String renders the package in a human readable form, one field per line
func (p *Package) String() string {
	var b strings.Builder

	field := func(name string, value any) {
		fmt.Fprintf(&b, "%-17s: %v\n", name, value)
	}
	list := func(name string, values []string) {
		if len(values) == 0 {
			field(name, "None")
			return
		}
		field(name, strings.Join(values, "  "))
	}

	field("Name", p.Name)
	field("Base", p.Base)
	field("Filename", p.Filename)
	field("Version", p.Version)
	field("Description", p.Description)
	field("URL", p.URL)
	field("Download Size", p.Size)
	field("Installed Size", p.InstalledSize)
	field("Architecture", p.Architecture)
	field("MD5 Sum", p.MD5Sum)
	field("SHA-256 Sum", p.SHA256Sum)
	field("Build Date", p.BuildDate)
	field("Packager", p.Packager)
	list("Licenses", p.Licenses)
	list("Provides", p.Provides)
	list("Depends On", p.Depends)
	list("Make Depends", p.MakeDepends)
	list("Optional Deps", p.OptionalDepends)
	list("Check Depends", p.CheckDepends)

	return b.String()
}
