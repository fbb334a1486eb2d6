package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Enums   []*enumBlock  `hcl:"enum,block"`
	Classes []*classBlock `hcl:"class,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

type enumBlock struct {
	Name  string       `hcl:"name,label"`
	Width *int         `hcl:"width,optional"`
	Items []*itemBlock `hcl:"item,block"`
}

type itemBlock struct {
	Name  string `hcl:"name,label"`
	Value int64  `hcl:"value"`
}

type classBlock struct {
	Name       string           `hcl:"name,label"`
	Bases      []string         `hcl:"bases,optional"`
	Variables  []*memberBlock   `hcl:"variable,block"`
	Functions  []*functionBlock `hcl:"function,block"`
	Containers []*memberBlock   `hcl:"container,block"`
}

type memberBlock struct {
	Name string         `hcl:"name,label"`
	Type hcl.Expression `hcl:"type"`
}

type functionBlock struct {
	Name    string         `hcl:"name,label"`
	Returns hcl.Expression `hcl:"returns,optional"`
	Params  hcl.Expression `hcl:"params,optional"`
	Const   *bool          `hcl:"const,optional"`
}
