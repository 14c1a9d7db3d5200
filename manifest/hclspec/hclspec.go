package hclspec

type Manifest struct {
	Presets []Preset `hcl:"preset,block"`
}

type Preset struct {
	Required string `hcl:"required,optional"`
	Optional string `hcl:"optional,optional"`
}
