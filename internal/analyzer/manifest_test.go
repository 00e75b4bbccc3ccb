package analyzer

import (
	"testing"

	"github.com/Zachacious/go-rpcdoc/internal/introspect"
	"github.com/Zachacious/go-rpcdoc/internal/model"
)

const manifestSource = `
classes:
  - name: UserService
    resolver: true
    methods:
      - name: __construct
        params:
          - {name: repo, type: Repository}
      - name: __toString
        returns: {type: string}
      - name: boot
        constructor: true
      - name: find
        params:
          - {name: id, type: int}
        returns: {type: "?string"}
      - name: list
        doc: |
          Lists users.
          @param int $limit
          @return User[] users page
        params:
          - {name: limit, default: 20}
          - {name: filter, type: array, default: null}
          - {name: tags, optional: true}
        returns: {type: array}
      - name: profile
        params:
          - {name: user, type: User}
          - {name: page, type: int, default: 1}
        returns: {type: Address, nullable: true}
      - name: hidden
        visibility: private
  - name: User
    properties:
      - {name: id, type: int}
      - {name: address, type: Address}
      - {name: email, type: string, visibility: private}
      - {name: phone, visibility: protected}
      - name: notes
        doc: "@var string[]"
    methods:
      - name: getEmail
        returns: {type: string}
      - name: getPhone
        doc: "@return ?string"
  - name: Address
    properties:
      - {name: city, type: string}
      - {name: owner, type: User}
  - name: Repository
`

func manifestSchema(t *testing.T, opts ...Option) model.Namespace {
	t.Helper()
	m, err := introspect.ParseManifest([]byte(manifestSource))
	if err != nil {
		t.Fatal(err)
	}
	resolvers := m.Resolvers()
	if len(resolvers) != 1 {
		t.Fatalf("resolvers = %d, want 1", len(resolvers))
	}
	b := newTestBuilder(opts...)
	mustAdd(t, b, resolvers[0])
	return b.GetAll()["userService"]
}

func TestManifest_FindScenario(t *testing.T) {
	ns := manifestSchema(t)
	find, ok := ns["find"]
	if !ok {
		t.Fatal("userService.find missing")
	}

	id, _ := find.Params.Get("id")
	if want := (model.ParameterDescriptor{Type: model.Named("int"), Required: true}); id != want {
		t.Errorf("id = %+v, want %+v", id, want)
	}
	if want := (model.ReturnDescriptor{Type: model.Named("string"), AllowNull: true}); find.Result != want {
		t.Errorf("result = %+v, want %+v", find.Result, want)
	}
}

func TestManifest_SkippedMethods(t *testing.T) {
	ns := manifestSchema(t)
	for _, name := range []string{"__construct", "__toString", "boot", "hidden"} {
		if _, ok := ns[name]; ok {
			t.Errorf("method %s must not be documented", name)
		}
	}
	if len(ns) != 3 {
		t.Errorf("operations = %d, want 3", len(ns))
	}
}

func TestManifest_Defaults(t *testing.T) {
	list := manifestSchema(t)["list"]

	tests := []struct {
		param string
		want  model.ParameterDescriptor
	}{
		{"limit", model.ParameterDescriptor{Type: model.Named("int"), Required: false, AllowNull: true}},
		{"filter", model.ParameterDescriptor{Type: model.Named(MixedArrayType), Required: false, AllowNull: true, HasDefault: true, Default: nil}},
		{"tags", model.ParameterDescriptor{Type: model.Named(MixedType), Required: false, AllowNull: true}},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			got, ok := list.Params.Get(tt.param)
			if !ok {
				t.Fatalf("param %s missing", tt.param)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if want := (model.ReturnDescriptor{Type: model.Named("User[]"), AllowNull: false}); list.Result != want {
		t.Errorf("result = %+v, want %+v", list.Result, want)
	}
	if list.Summary != "Lists users." {
		t.Errorf("summary = %q", list.Summary)
	}
}

func TestManifest_TypedDefault(t *testing.T) {
	profile := manifestSchema(t)["profile"]

	page, _ := profile.Params.Get("page")
	want := model.ParameterDescriptor{Type: model.Named("int"), Required: false, HasDefault: true, Default: 1}
	if page != want {
		t.Errorf("page = %+v, want %+v", page, want)
	}
}

func TestManifest_ObjectExpansion(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		wantUser   string
		wantResult string
	}{
		{
			name:       "defaults",
			opts:       []Option{WithAccessorPrefix("get")},
			wantUser:   "{id: int, address: {city: string, owner: {id: int, address: Address, email: string, phone: ?string, notes: string[]}}, email: string, phone: ?string, notes: string[]}",
			wantResult: "{city: string, owner: {id: int, address: {city: string, owner: User}, email: string, phone: ?string, notes: string[]}}",
		},
		{
			name:       "depth 0",
			opts:       []Option{WithAccessorPrefix("get"), WithMaxDepth(0)},
			wantUser:   "{id: int, address: Address, email: string, phone: ?string, notes: string[]}",
			wantResult: "{city: string, owner: User}",
		},
		{
			name:       "capitalized accessors",
			opts:       []Option{WithMaxDepth(0)},
			wantUser:   "{id: int, address: Address, notes: string[]}",
			wantResult: "{city: string, owner: User}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := manifestSchema(t, tt.opts...)["profile"]
			user, _ := profile.Params.Get("user")
			if got := user.Type.String(); got != tt.wantUser {
				t.Errorf("user = %s\nwant %s", got, tt.wantUser)
			}
			if got := profile.Result.Type.String(); got != tt.wantResult {
				t.Errorf("result = %s\nwant %s", got, tt.wantResult)
			}
			if !profile.Result.AllowNull {
				t.Errorf("nullable result not reported")
			}
		})
	}
}
