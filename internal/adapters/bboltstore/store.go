// Package bboltstore implements ports.ProjectStore using bbolt (embedded
// B+ tree). A "projects" bucket maps project names to JSON records; a "runs"
// bucket holds a per-project sub-bucket of analysis run records. Writes are
// transactional — a crash mid-write cannot corrupt previously committed data.
package bboltstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/magpielabs/magpie/internal/ports"
)

// Bucket keys
var (
	bucketProjects = []byte("projects")
	bucketRuns     = []byte("runs")
)

// Store implements ports.ProjectStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProject persists a project record, overwriting any prior record with
// the same name.
func (s *Store) SaveProject(p *ports.Project) error {
	if p == nil || p.Name == "" {
		return fmt.Errorf("project must have a name")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketProjects)
		if err != nil {
			return err
		}
		return b.Put([]byte(p.Name), data)
	})
}

// LoadProject retrieves a project by name. Returns nil, nil when missing.
func (s *Store) LoadProject(name string) (*ports.Project, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var p ports.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal project %q: %w", name, err)
	}
	return &p, nil
}

// ListProjects returns all projects sorted by name.
func (s *Store) ListProjects() ([]*ports.Project, error) {
	var out []*ports.Project
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProjects)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var p ports.Project
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("unmarshal project: %w", err)
			}
			out = append(out, &p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteProject removes a project and all its run records. Idempotent.
func (s *Store) DeleteProject(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketProjects); b != nil {
			if err := b.Delete([]byte(name)); err != nil {
				return err
			}
		}
		if rb := tx.Bucket(bucketRuns); rb != nil {
			if rb.Bucket([]byte(name)) != nil {
				if err := rb.DeleteBucket([]byte(name)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SaveRun appends an analysis run record under its project.
func (s *Store) SaveRun(r *ports.AnalysisRun) error {
	if r == nil || r.ID == "" || r.Project == "" {
		return fmt.Errorf("run must have an id and project")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		rb, err := tx.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return err
		}
		pb, err := rb.CreateBucketIfNotExists([]byte(r.Project))
		if err != nil {
			return err
		}
		return pb.Put([]byte(r.ID), data)
	})
}

// ListRuns returns all runs for a project, oldest first.
func (s *Store) ListRuns(project string) ([]*ports.AnalysisRun, error) {
	var out []*ports.AnalysisRun
	err := s.db.View(func(tx *bolt.Tx) error {
		rb := tx.Bucket(bucketRuns)
		if rb == nil {
			return nil
		}
		pb := rb.Bucket([]byte(project))
		if pb == nil {
			return nil
		}
		return pb.ForEach(func(_, v []byte) error {
			var r ports.AnalysisRun
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal run: %w", err)
			}
			out = append(out, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}
