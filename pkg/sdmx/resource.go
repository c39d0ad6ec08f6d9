package sdmx

// ResourceType identifies the kind of SDMX resource addressed by a request.
type ResourceType string

// Resource types accepted for URL construction.
const (
	ResourceData           ResourceType = "data"
	ResourceDataflow       ResourceType = "dataflow"
	ResourceDataStructure  ResourceType = "datastructure"
	ResourceCategoryScheme ResourceType = "categoryscheme"
	ResourceCodelist       ResourceType = "codelist"
	ResourceConceptScheme  ResourceType = "conceptscheme"
)

var resourceTypes = map[ResourceType]struct{}{
	ResourceData:           {},
	ResourceDataflow:       {},
	ResourceDataStructure:  {},
	ResourceCategoryScheme: {},
	ResourceCodelist:       {},
	ResourceConceptScheme:  {},
}

// Valid reports whether r is one of the enumerated resource types.
func (r ResourceType) Valid() bool {
	_, ok := resourceTypes[r]
	return ok
}

// ResourceTypes returns the enumerated set, for error messages and validation.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceData,
		ResourceDataflow,
		ResourceDataStructure,
		ResourceCategoryScheme,
		ResourceCodelist,
		ResourceConceptScheme,
	}
}
