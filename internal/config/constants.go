package config

// KernelDocument is the id of the built-in document every other document
// imports implicitly under the alias "ftd".
const KernelDocument = "ftd"

// SourceFileExtensions are the recognized extensions of YAML-encoded AST files.
var SourceFileExtensions = []string{".ftd.yaml", ".ftd.yml"}

// Reserved identifiers.
const (
	ReferencePrefix   = "$"
	ClonePrefix       = "*$"
	CloneFuncName     = "clone"
	InheritedPrefix   = "inherited"
	LoopCounter       = "LOOP.COUNTER"
	SpecialValue      = "VALUE"
	SpecialChecked    = "CHECKED"
	FTDSpecialValue   = "FTD_SPECIAL_VALUE"
	FTDSpecialChecked = "FTD_SPECIAL_CHECKED"
	ChildrenKeyword   = "children"
	RootDataID        = "main"
	DummySuffix       = "dummy"
	ExternalIDMarker  = "-external:"
	ThingSeparator    = "#"
	VariantSeparator  = "."
)

// Built-in expression functions.
const (
	LenFuncName              = "len"
	IsEmptyFuncName          = "is_empty"
	EnableDarkModeFuncName   = "enable_dark_mode"
	EnableLightModeFuncName  = "enable_light_mode"
	EnableSystemModeFuncName = "enable_system_mode"
)

// Kernel components.
const (
	TextComponent      = "ftd#text"
	IntegerComponent   = "ftd#integer"
	DecimalComponent   = "ftd#decimal"
	BooleanComponent   = "ftd#boolean"
	CodeComponent      = "ftd#code"
	ImageComponent     = "ftd#image"
	IFrameComponent    = "ftd#iframe"
	TextInputComponent = "ftd#text-input"
	RowComponent       = "ftd#row"
	ColumnComponent    = "ftd#column"
	SceneComponent     = "ftd#scene"
	GridComponent      = "ftd#grid"
	DesktopComponent   = "ftd#desktop"
	MobileComponent    = "ftd#mobile"
	DocumentComponent  = "ftd#document"
)

// Kernel records.
const (
	ColorRecord               = "ftd#color"
	ImageSrcRecord            = "ftd#image-src"
	ResponsiveLengthRecord    = "ftd#responsive-length"
	TypeRecord                = "ftd#type"
	ResponsiveTypeRecord      = "ftd#responsive-type"
	ShadowRecord              = "ftd#shadow"
	LinearGradientRecord      = "ftd#linear-gradient"
	LinearGradientColorRecord = "ftd#linear-gradient-color"
	BackgroundImageRecord     = "ftd#background-image"
	LengthPairRecord          = "ftd#length-pair"
	ColorSchemeRecord         = "ftd#color-scheme"
	TypeDataRecord            = "ftd#type-data"
	BreakpointWidthRecord     = "ftd#breakpoint-width-data"
)

// Kernel or-types.
const (
	LengthOrType                  = "ftd#length"
	ResizingOrType                = "ftd#resizing"
	AlignOrType                   = "ftd#align"
	SpacingOrType                 = "ftd#spacing"
	BackgroundOrType              = "ftd#background"
	FontSizeOrType                = "ftd#font-size"
	TextAlignOrType               = "ftd#text-align"
	TextTransformOrType           = "ftd#text-transform"
	TextStyleOrType               = "ftd#text-style"
	CursorOrType                  = "ftd#cursor"
	OverflowOrType                = "ftd#overflow"
	BorderStyleOrType             = "ftd#border-style"
	ResizeOrType                  = "ftd#resize"
	AlignSelfOrType               = "ftd#align-self"
	DisplayOrType                 = "ftd#display"
	WhiteSpaceOrType              = "ftd#white-space"
	AnchorOrType                  = "ftd#anchor"
	RegionOrType                  = "ftd#region"
	ImageFitOrType                = "ftd#image-fit"
	TextInputTypeOrType           = "ftd#text-input-type"
	LoadingOrType                 = "ftd#loading"
	BackgroundRepeatOrType        = "ftd#background-repeat"
	BackgroundSizeOrType          = "ftd#background-size"
	BackgroundPositionOrType      = "ftd#background-position"
	LinearGradientDirectionOrType = "ftd#linear-gradient-directions"
	DeviceDataOrType              = "ftd#device-data"
)

// Kernel variables. DarkModeVariable and DeviceVariable are also the
// pseudo-variables of the dependency map.
const (
	DarkModeVariable        = "ftd#dark-mode"
	DeviceVariable          = "ftd#device"
	BreakpointWidthVariable = "ftd#breakpoint-width"
	DefaultColorsVariable   = "ftd#default-colors"
	DefaultTypesVariable    = "ftd#default-types"
)

// Names of the inheritance frame entries.
const (
	InheritedColors = "colors"
	InheritedTypes  = "types"
)
