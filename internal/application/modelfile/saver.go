package modelfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"threatmap/internal/domain/model"
	"threatmap/internal/log"
)

// FromModel converts a populated registry back into the plain document
// shape, partitioning elements by kind the same way the load path expects
// them.
func FromModel(tm *model.ThreatModel) *Document {
	doc := &Document{
		Name:        tm.Name(),
		Description: tm.Description(),
	}

	for _, e := range tm.Elements() {
		switch el := e.(type) {
		case *model.Dataflow:
			doc.Dataflows = append(doc.Dataflows, DataflowRecord{
				ID:            string(el.Identifier()),
				Name:          el.Name(),
				Description:   el.Description(),
				FirstNode:     string(el.FirstID()),
				SecondNode:    string(el.SecondID()),
				Bidirectional: el.Bidirectional(),
			})
		case *model.Boundary:
			members := make([]string, len(el.Members()))
			for i, member := range el.Members() {
				members[i] = string(member)
			}
			doc.Boundaries = append(doc.Boundaries, BoundaryRecord{
				ID:          string(el.Identifier()),
				Name:        el.Name(),
				Description: el.Description(),
				Members:     members,
				Parent:      string(el.ParentID()),
			})
		default:
			doc.Nodes = append(doc.Nodes, NodeRecord{
				ID:          string(e.Identifier()),
				Name:        e.Name(),
				Type:        e.Kind().String(),
				Description: e.Description(),
			})
		}
	}

	for _, t := range tm.Threats() {
		record := ThreatRecord{
			ID:             string(t.Identifier()),
			Name:           t.Name(),
			Description:    t.Description(),
			Status:         t.Status().Name(),
			ThreatCategory: t.Category().Name(),
			DFDElement:     string(t.Element()),
		}
		if impact, ok := t.BaseImpact(); ok {
			record.BaseImpact = impact.Name()
		}
		if exploitability, ok := t.BaseExploitability(); ok {
			record.BaseExploitability = exploitability.Name()
		}
		for _, id := range t.ChildThreatIDs() {
			record.ChildThreats = append(record.ChildThreats, string(id))
		}
		for _, id := range t.MitigationIDs() {
			record.Mitigations = append(record.Mitigations, string(id))
		}
		doc.Threats = append(doc.Threats, record)
	}

	for _, m := range tm.Mitigations() {
		doc.Mitigations = append(doc.Mitigations, MitigationRecord{
			ID:          string(m.Identifier()),
			Name:        m.Name(),
			Description: m.Description(),
		})
	}

	return doc
}

// Save serializes the registry to w in the model file document shape.
func Save(tm *model.ThreatModel, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(FromModel(tm)); err != nil {
		return fmt.Errorf("encoding model file: %w", err)
	}
	return encoder.Close()
}

// SaveFile serializes the registry to the file at path, replacing any
// previous contents. The write goes through a temp file and a rename so a
// crash mid-save never leaves a truncated model behind.
func SaveFile(tm *model.ThreatModel, path string) error {
	var buf bytes.Buffer
	if err := Save(tm, &buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	log.Debug(log.CatFile, "model saved", "path", path)
	return nil
}
