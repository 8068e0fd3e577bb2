package seed

// Entry is a single video entry in the seed YAML.
type Entry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Suggestion  string `yaml:"suggestion"`
}

// File is the root structure of the seed file.
type File struct {
	Videos []Entry `yaml:"videos"`
}
