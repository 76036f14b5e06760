package topic

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads the expressions of a topic file: a JSON array of
// expressions, each an array of items.
func Decode(r io.Reader, name string) (Topic, error) {
	var exprs []TopicExpr
	if err := json.NewDecoder(r).Decode(&exprs); err != nil {
		return Topic{}, fmt.Errorf("topic %s: %w", name, err)
	}

	return Assemble(name, exprs), nil
}

// Assemble sets TopicName, ExprIndex and ExprId for each item
func Assemble(name string, exprs []TopicExpr) Topic {
	for index := range exprs {
		id := exprs[index].String()
		for idx := range exprs[index] {
			exprs[index][idx].TopicName = name
			exprs[index][idx].ExprIndex = index
			exprs[index][idx].ExprId = id
		}
	}
	return Topic{
		Name:  name,
		Exprs: exprs,
	}
}
