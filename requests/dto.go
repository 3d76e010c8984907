package requests

import (
	"time"

	"github.com/brettbedarf/namefs"
)

// NodeRequestDTO is the YAML/JSON representation of [namefs.NodeCreateRequest]
type NodeRequestDTO struct {
	Path    string                       `json:"path" yaml:"path" validate:"required"`
	Type    namefs.NodeCreateRequestType `json:"type" yaml:"type" validate:"required,oneof=file dir symlink"`
	UUID    *string                      `json:"uuid,omitempty" yaml:"uuid,omitempty" validate:"omitempty,uuid"`
	Perms   *uint32                      `json:"perms,omitempty" yaml:"perms,omitempty" validate:"omitempty,max=4095"` // i.e. 0755
	Mtime   *time.Time                   `json:"mtime,omitempty" yaml:"mtime,omitempty"`
	Target  *string                      `json:"target,omitempty" yaml:"target,omitempty" validate:"required_if=Type symlink,excluded_unless=Type symlink"`
	Content *string                      `json:"content,omitempty" yaml:"content,omitempty" validate:"excluded_unless=Type file"`
}
