package filesystem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/annot/storage"
	tpc "github.com/revelaction/annot/topic"
)

// TopicStore keeps one JSON file per topic in a directory
type TopicStore struct {
	root string
}

var _ storage.TopicRepository = (*TopicStore)(nil)

func NewTopicStore(root string) *TopicStore {
	return &TopicStore{root: root}
}

func (th *TopicStore) All() (tpc.Library, error) {
	names, err := th.Names()
	if err != nil {
		return nil, err
	}

	topics := tpc.Library{}
	for _, n := range names {
		t, err := th.Topic(n)
		if err != nil {
			return nil, err
		}

		topics = append(topics, t)
	}

	return topics, nil
}

func (th *TopicStore) Names() ([]string, error) {
	names := []string{}

	// no topic written yet
	files, err := os.ReadDir(th.root)
	if errors.Is(err, os.ErrNotExist) {
		return names, nil
	}
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))
	}

	sort.Strings(names)
	return names, nil
}

func (th *TopicStore) Topic(name string) (tpc.Topic, error) {
	f, err := os.Open(filepath.Join(th.root, name+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tpc.Topic{}, fmt.Errorf("topic %s: %w", name, storage.ErrNotFound)
		}
		return tpc.Topic{}, err
	}
	defer f.Close()

	return tpc.Decode(f, name)
}

func (th *TopicStore) Write(tp tpc.Topic) error {
	if tp.Name == "" || strings.ContainsAny(tp.Name, `/\`) {
		return fmt.Errorf("invalid topic name %q", tp.Name)
	}

	exprs := tp.Exprs
	if exprs == nil {
		exprs = []tpc.TopicExpr{}
	}

	jsonData, err := json.Marshal(exprs)
	if err != nil {
		return err
	}

	// Format the json with each line containing a topic expresion
	// Remove the first [
	jsonFmt := bytes.TrimPrefix(jsonData, []byte("["))
	// replace the rest with indent
	jsonFmt = bytes.ReplaceAll(jsonFmt, []byte("],"), []byte("],\n\t"))
	// remove the last
	jsonFmt = bytes.TrimSuffix(jsonFmt, []byte("]"))
	jsonFmt = append([]byte("[\n\t"), jsonFmt...)
	jsonFmt = append(jsonFmt, []byte("\n]\n")...)

	if err := os.MkdirAll(th.root, 0755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(th.root, tp.Name+".json"), jsonFmt, 0644)
}
