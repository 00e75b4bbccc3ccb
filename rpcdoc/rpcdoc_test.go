package rpcdoc_test

import (
	"bytes"
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/Zachacious/go-rpcdoc/rpcdoc"
)

type Item struct {
	SKU   string `json:"sku"`
	Price float64
}

type CartService struct{}

func (*CartService) AddItem(item Item, qty int) error { return nil }
func (*CartService) Items() []Item                    { return nil }

type PriceResolver struct{}

func (PriceResolver) Quote(sku string) *float64 { return nil }

func TestDocument(t *testing.T) {
	schema, err := rpcdoc.Document(&CartService{}, PriceResolver{})
	if err != nil {
		t.Fatal(err)
	}
	if len(schema) != 2 {
		t.Fatalf("namespaces = %v", schema)
	}

	add := schema["cartService"]["AddItem"]
	item, _ := add.Params.Get("arg0")
	if got := item.Type.String(); got != "{sku: string, Price: float64}" {
		t.Errorf("item = %s", got)
	}
	if !add.Result.Void {
		t.Errorf("AddItem must be void")
	}

	quote := schema["priceResolver"]["Quote"]
	if quote.Result.Type.Name != "float64" || !quote.Result.AllowNull {
		t.Errorf("Quote result = %+v", quote.Result)
	}
}

func TestCollect(t *testing.T) {
	resolvers := map[string]any{"cart": &CartService{}, "bad": 7}
	_, err := rpcdoc.Collect(maps.Values(resolvers), rpcdoc.WithMaxDepth(1))
	if !errors.Is(err, rpcdoc.ErrInvalidArgument) {
		t.Errorf("Collect() error = %v, want ErrInvalidArgument", err)
	}
}

func TestWrite(t *testing.T) {
	schema, err := rpcdoc.Document(PriceResolver{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := rpcdoc.Write(&buf, schema, "yaml"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "priceResolver:\n  Quote:\n") {
		t.Errorf("yaml = %s", buf.String())
	}
}

func TestCollect_LowerFirstMethods(t *testing.T) {
	schema, err := rpcdoc.Collect(slices.Values([]any{PriceResolver{}}), rpcdoc.WithMethodNamer(rpcdoc.LowerFirst))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := schema["priceResolver"]["quote"]; !ok {
		t.Errorf("priceResolver.quote missing from %v", schema)
	}
}
