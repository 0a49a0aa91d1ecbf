package config

// Config is the resolved tool configuration. Paths are absolute after Load.
type Config struct {
	Env      string   `mapstructure:"env"`      // runtime environment (local, ci, production)
	Content  Content  `mapstructure:"content"`  // content files to validate and scan
	Taxonomy Taxonomy `mapstructure:"taxonomy"` // master label file
	Scan     Scan     `mapstructure:"scan"`     // similarity scanner tuning
	Validate ValidateSettings `mapstructure:"validate"` // validator tuning
	Store    Store    `mapstructure:"store"`    // findings database
	Server   Server   `mapstructure:"server"`   // report server
	Report   Report   `mapstructure:"report"`   // rendered reports

	Root string `mapstructure:"-"` // repository root, parent of .quizlint
	File string `mapstructure:"-"` // config file used, empty when only defaults applied
}

// Content locates the content files.
type Content struct {
	Dir        string   `mapstructure:"dir"`
	Extensions []string `mapstructure:"extensions"`
}

// Taxonomy locates the taxonomy file and the collation used when saving it.
type Taxonomy struct {
	Path   string `mapstructure:"path"`
	Locale string `mapstructure:"locale"`
}

// Scan holds similarity thresholds and filters.
type Scan struct {
	TextThreshold   float64  `mapstructure:"text_threshold"`
	OptionThreshold float64  `mapstructure:"option_threshold"`
	IncludePrefixes []string `mapstructure:"include_prefixes"`
	StripMarkup     bool     `mapstructure:"strip_markup"`
}

// ValidateSettings holds validator concurrency and registration settings.
type ValidateSettings struct {
	Workers     int  `mapstructure:"workers"`
	RegisterNew bool `mapstructure:"register_new"`
}

// Store configures the findings database.
type Store struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Server configures the report server.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Report configures rendered reports.
type Report struct {
	// PDFFont is a TrueType font with glyphs for the content language, used for PDF output.
	PDFFont string `mapstructure:"pdf_font"`
}
