package cache

import (
	"sort"
	"strings"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns highwayhash-64 of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Edge represents a resolved reference pair
type Edge struct {
	Alias  string
	Target string
}

// Descriptor represents structural entity input, locations and declaration identity are excluded
type Descriptor struct {
	FQN        string
	Module     string
	Members    []string
	Commands   []string
	References []Edge
	Triggers   []string
}

// Canonical returns canonical text of the descriptor, every list is sorted
func (d *Descriptor) Canonical() string {
	builder := strings.Builder{}
	builder.WriteString("fqn=")
	builder.WriteString(d.FQN)
	builder.WriteString("\nmodule=")
	builder.WriteString(d.Module)
	writeList(&builder, "members", d.Members)
	writeList(&builder, "commands", d.Commands)
	edges := make([]string, 0, len(d.References))
	for _, edge := range d.References {
		edges = append(edges, edge.Alias+"->"+edge.Target)
	}
	writeList(&builder, "references", edges)
	writeList(&builder, "triggers", d.Triggers)
	return builder.String()
}

// Key returns structural hash of the descriptor
func (d *Descriptor) Key() (uint64, error) {
	return Hash([]byte(d.Canonical()))
}

func writeList(builder *strings.Builder, name string, values []string) {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	builder.WriteString("\n")
	builder.WriteString(name)
	builder.WriteString("=")
	for i, value := range sorted {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(value)
	}
}
