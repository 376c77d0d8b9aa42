package cinit

import "fmt"

// Config is a small typed option bag for the two genuinely optional
// dials the initializer engine exposes.
type Config map[string]*cfgVal

// NewConfig returns a Config primed with the engine's defaults:
// post-processing re-validates its own ordering invariant, and
// zero-fill may use 8-byte `long` stores (byte-range fill otherwise
// stops at 4-byte `int` chunks, and struct/union zero-fill at `char`).
func NewConfig() *Config {
	c := make(Config)
	c.SetBool("postprocess.validate", true)
	c.SetBool("zerofill.prefer_long", true)
	return &c
}

type cfgValType int

const (
	cfgValUndefined cfgValType = iota
	cfgValBool
	cfgValInt
)

func (vt cfgValType) String() string {
	switch vt {
	case cfgValBool:
		return "bool"
	case cfgValInt:
		return "int"
	default:
		return "undefined"
	}
}

type cfgVal struct {
	typ    cfgValType
	asBool bool
	asInt  int
}

func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValUndefined {
		panic(fmt.Sprintf("cinit: can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("cinit: can't retrieve `%s` from `%s` option", vt, v.typ))
	}
}

func (c *Config) SetBool(path string, v bool) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValBool)
	(*c)[path].asBool = v
}

func (c *Config) SetInt(path string, v int) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValInt)
	(*c)[path].asInt = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValBool)
		return val.asBool
	}
	return false
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValInt)
		return val.asInt
	}
	return 0
}
