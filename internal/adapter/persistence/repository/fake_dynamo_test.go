package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

// fakeDynamo is an in-memory multi-table stand-in. Items are keyed by their
// "id" or "key" attribute. It evaluates the flat condition expressions the
// repositories send: attribute_exists, attribute_not_exists and equality,
// joined by a single kind of AND/OR.
type fakeDynamo struct {
	mu       sync.Mutex
	tables   map[string]map[string]item
	counters map[string]int64
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]item{}, counters: map[string]int64{}}
}

func scalar(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	case *types.AttributeValueMemberBOOL:
		return strconv.FormatBool(v.Value)
	}
	return ""
}

func keyOf(it item) string {
	for _, attr := range []string{"id", "key"} {
		if v, ok := it[attr]; ok {
			return attr + "=" + scalar(v)
		}
	}
	return ""
}

func stringAttr(it item, name string) string {
	if s, ok := it[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) table(name *string) map[string]item {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		t = map[string]item{}
		f.tables[aws.ToString(name)] = t
	}
	return t
}

func holds(existing item, cond *string, names map[string]string, values map[string]types.AttributeValue) bool {
	expr := aws.ToString(cond)
	if expr == "" {
		return true
	}
	sep, disjunction := " AND ", false
	if strings.Contains(expr, " OR ") {
		sep, disjunction = " OR ", true
	}
	for _, clause := range strings.Split(expr, sep) {
		ok := clauseHolds(existing, strings.TrimSpace(clause), names, values)
		if disjunction && ok {
			return true
		}
		if !disjunction && !ok {
			return false
		}
	}
	return !disjunction
}

func clauseHolds(existing item, clause string, names map[string]string, values map[string]types.AttributeValue) bool {
	argOf := func(prefix string) string {
		return names[strings.TrimSuffix(strings.TrimPrefix(clause, prefix), ")")]
	}
	switch {
	case strings.HasPrefix(clause, "attribute_not_exists("):
		_, ok := existing[argOf("attribute_not_exists(")]
		return existing == nil || !ok
	case strings.HasPrefix(clause, "attribute_exists("):
		_, ok := existing[argOf("attribute_exists(")]
		return existing != nil && ok
	}
	left, right, ok := strings.Cut(clause, " = ")
	if !ok || existing == nil {
		return false
	}
	got, present := existing[names[left]]
	return present && scalar(got) == scalar(values[right])
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.table(in.TableName)[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(in.TableName)
	k := keyOf(in.Item)
	if !holds(t[k], in.ConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	t[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := stringAttr(in.Key, "name")
	f.counters[name]++
	return &dynamodb.UpdateItemOutput{Attributes: item{
		"value": &types.AttributeValueMemberN{Value: strconv.FormatInt(f.counters[name], 10)},
	}}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attr := in.ExpressionAttributeNames["#k"]
	want := scalar(in.ExpressionAttributeValues[":v"])
	var out []item
	for _, it := range f.sorted(in.TableName) {
		if v, ok := it[attr]; ok && scalar(v) == want {
			out = append(out, it)
		}
	}
	return &dynamodb.QueryOutput{Items: out}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.ScanOutput{Items: f.sorted(in.TableName)}, nil
}

// TransactWriteItems checks every condition first and applies nothing unless
// all of them hold.
func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, ti := range in.TransactItems {
		ok := true
		switch {
		case ti.Put != nil:
			ok = holds(f.table(ti.Put.TableName)[keyOf(ti.Put.Item)], ti.Put.ConditionExpression, ti.Put.ExpressionAttributeNames, ti.Put.ExpressionAttributeValues)
		case ti.Delete != nil:
			ok = holds(f.table(ti.Delete.TableName)[keyOf(ti.Delete.Key)], ti.Delete.ConditionExpression, ti.Delete.ExpressionAttributeNames, ti.Delete.ExpressionAttributeValues)
		}
		reasons[i].Code = aws.String("None")
		if !ok {
			reasons[i].Code = aws.String("ConditionalCheckFailed")
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{CancellationReasons: reasons}
	}

	for _, ti := range in.TransactItems {
		switch {
		case ti.Put != nil:
			f.table(ti.Put.TableName)[keyOf(ti.Put.Item)] = ti.Put.Item
		case ti.Delete != nil:
			delete(f.table(ti.Delete.TableName), keyOf(ti.Delete.Key))
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// sorted returns a table's items in key order so results are deterministic.
func (f *fakeDynamo) sorted(name *string) []item {
	t := f.table(name)
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]item, 0, len(keys))
	for _, k := range keys {
		out = append(out, t[k])
	}
	return out
}

func (f *fakeDynamo) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[table])
}

var _ DynamoAPI = (*fakeDynamo)(nil)
