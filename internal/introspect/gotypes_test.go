package introspect

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

const source = `
package shop

import "time"

// Order is a placed order.
type Order struct {
	// ID identifies the order.
	ID      int       ` + "`json:\"id,omitempty\"`" + `
	Items   []Item    ` + "`json:\"items\"`" + `
	Placed  time.Time // placement time
	Payload any
	Skip    string ` + "`json:\"-\"`" + `
	status  string
}

type Item struct {
	SKU string
}

type OrderService struct {
	orders map[int]*Order
}

// Get returns an order.
//
// @return Order
func (s *OrderService) Get(id int) (*Order, error) { return s.orders[id], nil }

func (s OrderService) Count() int { return len(s.orders) }

func (s *OrderService) Tag(_ string, tags ...any) error { return nil }

func (s *OrderService) internal() {}

type Alias = Order

type Code string
`

func loadShop(t *testing.T) (*Universe, *types.Package) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "shop.go", source, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := cfg.Check("example.com/shop", fset, []*ast.File{file}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewUniverse(Package{Types: pkg, Syntax: []*ast.File{file}}), pkg
}

func TestUniverse_Structs(t *testing.T) {
	u, _ := loadShop(t)

	var names []string
	for _, named := range u.Structs() {
		names = append(names, named.Obj().Name())
	}
	if got := strings.Join(names, ","); got != "Item,Order,OrderService" {
		t.Errorf("Structs() = %s", got)
	}

	if _, ok := u.Lookup("example.com/shop", "Code"); ok {
		t.Errorf("non-struct Code must not be a class")
	}
	if _, ok := u.Lookup("example.com/other", "Order"); ok {
		t.Errorf("unknown package must not resolve")
	}
}

func TestGoClass_Methods(t *testing.T) {
	u, _ := loadShop(t)
	class, ok := u.Lookup("example.com/shop", "OrderService")
	if !ok {
		t.Fatal("OrderService not found")
	}

	var names []string
	for _, m := range class.Methods() {
		names = append(names, m.Name())
	}
	if got := strings.Join(names, ","); got != "Count,Get,Tag" {
		t.Errorf("Methods() = %s", got)
	}

	get, _ := class.Method("Get")
	if doc := get.Doc(); !strings.HasPrefix(doc, "Get returns an order.") || !strings.Contains(doc, "@return Order") {
		t.Errorf("Get doc = %q", doc)
	}
	result, ok := get.Result()
	if !ok || result.Name() != "Order" || !result.AllowsNull() {
		t.Errorf("Get result = %v, %v", result, ok)
	}
	if _, isClass := result.Class(); !isClass {
		t.Errorf("Order must be a class")
	}

	tag, _ := class.Method("Tag")
	params := tag.Params()
	if len(params) != 2 || params[0].Name() != "arg0" || params[1].Name() != "tags" {
		t.Fatalf("Tag params = %v", params)
	}
	if !params[1].IsOptional() || !params[1].IsArray() || !params[1].AllowsNull() {
		t.Errorf("variadic any must be optional, array and nullable")
	}
	if _, ok := tag.Result(); ok {
		t.Errorf("Tag returns only an error and must have no result")
	}

	if _, ok := class.Method("internal"); ok {
		t.Errorf("unexported method must not be found")
	}
}

func TestGoClass_Properties(t *testing.T) {
	u, _ := loadShop(t)
	class, _ := u.Lookup("example.com/shop", "Order")

	tests := []struct {
		name, key, typeName string
		public, typed       bool
		doc                 string
	}{
		{"ID", "id", "int", true, true, "ID identifies the order.\n"},
		{"Items", "items", "[]Item", true, true, ""},
		{"Placed", "Placed", "time.Time", true, true, "placement time\n"},
		{"Payload", "Payload", "", true, false, ""},
		{"status", "status", "string", false, true, ""},
	}

	props := class.Properties()
	if len(props) != len(tests) {
		t.Fatalf("Properties() = %d, want %d", len(props), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := props[i]
			if p.Name() != tt.name || p.Key() != tt.key || p.IsPublic() != tt.public {
				t.Errorf("got %s/%s/%v", p.Name(), p.Key(), p.IsPublic())
			}
			typ, ok := p.Type()
			if ok != tt.typed {
				t.Fatalf("typed = %v, want %v", ok, tt.typed)
			}
			if ok && typ.Name() != tt.typeName {
				t.Errorf("type = %s, want %s", typ.Name(), tt.typeName)
			}
			if p.Doc() != tt.doc {
				t.Errorf("doc = %q, want %q", p.Doc(), tt.doc)
			}
		})
	}

	placed, _ := props[2].Type()
	if _, ok := placed.Class(); ok {
		t.Errorf("time.Time is outside the loaded packages and must not be a class")
	}
}
