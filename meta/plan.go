package meta

import "github.com/momentics/bolt-core/values"

// PlanNode is one node of a recursively extracted statement plan or
// profile tree (spec section 4.7).
type PlanNode struct {
	OperatorType    string
	Arguments       map[string]values.Value
	Identifiers     []string
	EstimatedRows   int64
	Rows            int64
	HasRows         bool
	DBHits          int64
	PageCacheHits   int64
	HasPageCache    bool
	PageCacheMisses int64
	Children        []*PlanNode
}

func extractPlan(v values.Value) (*PlanNode, error) {
	m, err := requireMap(v, "plan")
	if err != nil {
		return nil, err
	}

	opVal, ok := m.MapGet("operatorType")
	if !ok {
		return nil, protocolErr("plan node missing required field %q", "operatorType")
	}
	op, err := requireString(opVal, "operatorType")
	if err != nil {
		return nil, err
	}

	node := &PlanNode{OperatorType: op}

	if argsVal, ok := m.MapGet("args"); ok {
		args, err := requireMap(argsVal, "args")
		if err != nil {
			return nil, err
		}
		node.Arguments = make(map[string]values.Value, args.MapLen())
		for _, k := range args.MapKeys() {
			val, _ := args.MapGet(k)
			node.Arguments[k] = val
		}
	}

	if idsVal, ok := m.MapGet("identifiers"); ok {
		items, err := requireList(idsVal, "identifiers")
		if err != nil {
			return nil, err
		}
		node.Identifiers = make([]string, len(items))
		for i, item := range items {
			s, err := requireString(item, "identifiers[]")
			if err != nil {
				return nil, err
			}
			node.Identifiers[i] = s
		}
	}

	if v, ok := m.MapGet("estimated_rows"); ok {
		n, err := requireInt(v, "estimated_rows")
		if err != nil {
			return nil, err
		}
		node.EstimatedRows = n
	}
	if v, ok := m.MapGet("rows"); ok {
		n, err := requireInt(v, "rows")
		if err != nil {
			return nil, err
		}
		node.Rows = n
		node.HasRows = true
	}
	if v, ok := m.MapGet("dbHits"); ok {
		n, err := requireInt(v, "dbHits")
		if err != nil {
			return nil, err
		}
		node.DBHits = n
	}
	if v, ok := m.MapGet("page_cache_hits"); ok {
		n, err := requireInt(v, "page_cache_hits")
		if err != nil {
			return nil, err
		}
		node.PageCacheHits = n
		node.HasPageCache = true
	}
	if v, ok := m.MapGet("page_cache_misses"); ok {
		n, err := requireInt(v, "page_cache_misses")
		if err != nil {
			return nil, err
		}
		node.PageCacheMisses = n
	}

	if childrenVal, ok := m.MapGet("children"); ok {
		items, err := requireList(childrenVal, "children")
		if err != nil {
			return nil, err
		}
		node.Children = make([]*PlanNode, len(items))
		for i, item := range items {
			child, err := extractPlan(item)
			if err != nil {
				return nil, err
			}
			node.Children[i] = child
		}
	}

	return node, nil
}
