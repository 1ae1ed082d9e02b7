package consts

// Search-by-image wire constants. The receiving server matches these byte for byte.
const (
	SearchServer       = "www.google.com"
	UploadPath         = "/searchbyimage/upload"
	LookupPath         = "/searchbyimage"
	VersionParamName   = "sbisrc"
	Version            = "cr_1_4_1"
	DefaultPageTitle   = "Search by Image"
	HTMLDataURLPrefix  = "data:text/html;charset=utf-8;base64,"
	ThumbnailMediaType = "image/jpeg"
	ThumbnailQuality   = 90
)

type SearchMode string

const (
	SearchModeUpload SearchMode = "upload"
	SearchModeLookup SearchMode = "lookup"
	SearchModeInline SearchMode = "inline"
)

func (m SearchMode) String() string {
	return string(m)
}

type HoverOption string

const (
	HoverMouseover HoverOption = "mouseover"
	HoverNever     HoverOption = "never"
)

func (h HoverOption) String() string {
	return string(h)
}

type StorageSupplier string

const (
	AliOSS       StorageSupplier = "ali_oss"
	LocalStorage StorageSupplier = "local"
)

func (s StorageSupplier) String() string {
	return string(s)
}

// Preference keys as stored by the preference store.
const (
	PrefGetURL        = "sbi_get_url"
	PrefOption        = "sbi_option"
	PrefHoverMinDims  = "sbi_hover_min_dims"
	DefaultHoverMinPx = 45
)
