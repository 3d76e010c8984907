package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/namefs"
	"github.com/brettbedarf/namefs/internal/util"
)

// Format is the encoding of a node definition document
type Format string

const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// Default attributes for definitions that leave them out
const (
	DefaultFilePerms uint32 = 0o644
	DefaultDirPerms  uint32 = 0o755
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatFromPath picks the document format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	default:
		return "", fmt.Errorf("unknown definition file extension: %s", filepath.Ext(path))
	}
}

// LoadFile reads and decodes a node definition file
func LoadFile(path string) ([]*namefs.NodeCreateRequest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalNodeRequests(data, format)
}

// UnmarshalNodeRequests decodes a list of node definitions, validates each
// one and fills in defaults
func UnmarshalNodeRequests(data []byte, format Format) ([]*namefs.NodeCreateRequest, error) {
	logger := util.GetLogger("UnmarshalNodeRequests")

	var dtos []NodeRequestDTO
	var err error
	switch format {
	case JSONFormat:
		err = json.Unmarshal(data, &dtos)
	case YAMLFormat:
		err = yaml.Unmarshal(data, &dtos)
	default:
		return nil, fmt.Errorf("unknown definition format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal node definitions: %w", err)
	}

	reqs := make([]*namefs.NodeCreateRequest, 0, len(dtos))
	for i, dto := range dtos {
		if err := validate.Struct(dto); err != nil {
			return nil, fmt.Errorf("invalid node definition %d (%s): %w", i, dto.Path, err)
		}
		reqs = append(reqs, convertNodeDTO(dto))
	}
	logger.Debug().Int("count", len(reqs)).Str("format", string(format)).Msg("Decoded node definitions")
	return reqs, nil
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) *namefs.NodeCreateRequest {
	perms := DefaultFilePerms
	if dto.Type == namefs.DirNodeType {
		perms = DefaultDirPerms
	}
	return &namefs.NodeCreateRequest{
		Path:    dto.Path,
		Type:    dto.Type,
		UUID:    util.ValueOrDefault(dto.UUID, uuid.New().String()),
		Perms:   util.ValueOrDefault(dto.Perms, perms),
		Mtime:   util.ValueOrDefault(dto.Mtime, time.Now()),
		Target:  util.ValueOrDefault(dto.Target, ""),
		Content: util.ValueOrDefault(dto.Content, ""),
	}
}
