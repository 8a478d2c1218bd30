package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() []Program {
	return []Program{
		{ID: string(CrisisManagement), Name: "위기관리", Type: "융합전공"},
		{ID: string(VentureBusiness), Name: "벤처비즈니스", Type: "융합전공"},
		{ID: string(IPSmartFusion), Name: "지식재산 스마트융합", Type: "융합전공"},
		{ID: string(BigData), Name: "빅데이터", Type: "융합전공"},
	}
}

func names(ps []Program) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter_BusinessScenario(t *testing.T) {
	got := Filter(sampleCatalog(), Business)
	assert.Equal(t, []string{"위기관리", "벤처비즈니스", "지식재산 스마트융합"}, names(got))
}

func TestFilter_PreservesCatalogOrder(t *testing.T) {
	cat := []Program{
		{Name: "지식재산 스마트융합"},
		{Name: "이차전지융합"},
		{Name: "빅데이터"},
		{Name: "벤처비즈니스"},
	}
	got := Filter(cat, ManagementInformation)
	assert.Equal(t, []string{"지식재산 스마트융합", "이차전지융합", "빅데이터", "벤처비즈니스"}, names(got))
}

func TestFilter_UnselectedReturnsInput(t *testing.T) {
	cat := sampleCatalog()
	assert.Equal(t, cat, Filter(cat, ""))
	assert.Equal(t, cat, Filter(cat, Unselected))
}

func TestFilter_UnknownDepartmentIsEmpty(t *testing.T) {
	got := Filter(sampleCatalog(), "철학과")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_Idempotent(t *testing.T) {
	for _, dept := range append(Departments(), "", Unselected, "철학과") {
		once := Filter(sampleCatalog(), dept)
		twice := Filter(once, dept)
		assert.Equal(t, once, twice, "department %q", dept)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	cat := sampleCatalog()
	before := append([]Program(nil), cat...)
	_ = Filter(cat, InternationalBusiness)
	assert.Equal(t, before, cat)
}

func TestDepartmentsOrder(t *testing.T) {
	assert.Equal(t, []string{"경영학부", "국제경영학과", "경영정보학과"}, Departments())
}

func TestEligibleProgramsResolveToKnownIDs(t *testing.T) {
	for _, dept := range Departments() {
		for _, name := range EligiblePrograms(dept) {
			_, ok := LookupProgram(name)
			assert.True(t, ok, "%s lists unknown program %q", dept, name)
		}
	}
	assert.Empty(t, EligiblePrograms("철학과"))
}

func TestProgramTypesOnlyConvergenceEnabled(t *testing.T) {
	var enabled []string
	for _, pt := range ProgramTypes() {
		if pt.Enabled {
			enabled = append(enabled, pt.Label)
		}
	}
	assert.Equal(t, []string{"융합전공"}, enabled)
	assert.Len(t, ProgramTypes(), 4)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "빅데이터", BigData.DisplayName())
	assert.Equal(t, "unknown_id", ProgramID("unknown_id").DisplayName())
	id, ok := LookupProgram("지식재산 스마트융합")
	require.True(t, ok)
	assert.Equal(t, IPSmartFusion, id)
}

// =============================================================================
// LOADER
// =============================================================================

type stubSource struct {
	available    []Program
	catalog      []Program
	availableErr error
	catalogErr   error
	calls        []string
}

func (s *stubSource) AvailablePrograms(context.Context) ([]Program, error) {
	s.calls = append(s.calls, "available")
	return s.available, s.availableErr
}

func (s *stubSource) Catalog(context.Context) ([]Program, error) {
	s.calls = append(s.calls, "catalog")
	return s.catalog, s.catalogErr
}

func TestLoader_UsesCatalogByDefault(t *testing.T) {
	src := &stubSource{catalog: sampleCatalog()}
	got, err := NewLoader(src, false).Load(context.Background(), Business)
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog"}, src.calls)
	assert.Len(t, got, 3)
}

func TestLoader_UsesAvailableWhenConfigured(t *testing.T) {
	src := &stubSource{available: sampleCatalog()}
	got, err := NewLoader(src, true).Load(context.Background(), InternationalBusiness)
	require.NoError(t, err)
	assert.Equal(t, []string{"available"}, src.calls)
	assert.Equal(t, []string{"벤처비즈니스", "지식재산 스마트융합"}, names(got))
}

func TestLoader_FailureReturnsNoData(t *testing.T) {
	boom := errors.New("connection refused")
	src := &stubSource{catalog: sampleCatalog(), catalogErr: boom}
	got, err := NewLoader(src, false).Load(context.Background(), Business)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.Equal(t, []string{"catalog"}, src.calls, "no automatic retry")
}

func TestLoader_LoadAll(t *testing.T) {
	src := &stubSource{available: sampleCatalog(), catalog: sampleCatalog()}
	listing, err := NewLoader(src, false).LoadAll(context.Background(), InternationalBusiness)
	require.NoError(t, err)
	assert.Len(t, listing.Available, 2)
	assert.Len(t, listing.Catalog, 2)
}

func TestLoader_LoadAllFailsIfEitherFails(t *testing.T) {
	src := &stubSource{available: sampleCatalog(), catalogErr: errors.New("500")}
	_, err := NewLoader(src, false).LoadAll(context.Background(), "")
	assert.Error(t, err)
}
