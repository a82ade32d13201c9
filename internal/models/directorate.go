package models

// Directorate is a municipal sub-department with its own login identity.
// Name doubles as the directorate's login username.
type Directorate struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Directorates returns the static directorate catalog.
func Directorates() []Directorate {
	names := []string{
		"Afet İşleri Müdürlüğü",
		"Bilgi İşlem Müdürlüğü",
		"Destek Hizmetleri Müdürlüğü",
		"Emlak İstimlak Müdürlüğü",
		"Fen İşleri Müdürlüğü",
		"Hukuk İşleri Müdürlüğü",
		"İklim Değişikliği Sıfır Atık Müdürlüğü",
		"İmar ve Şehircilik Müdürlüğü",
		"İnsan Kaynakları ve Eğitim Müdürlüğü",
		"İtfaiye Müdürlüğü",
		"Kültür ve Sosyal İşler Müdürlüğü",
		"Makine İkmal Bakım ve Onarım Müdürlüğü",
		"Mali Hizmetler Müdürlüğü",
		"Park Bahçeler Müdürlüğü",
		"Sosyal Destek Hizmetleri Müdürlüğü",
		"Su ve Kanalizasyon Müdürlüğü",
		"Temizlik İşleri Müdürlüğü",
		"Veteriner İşleri Müdürlüğü",
		"Yazı İşleri Müdürlüğü",
		"Zabıta Müdürlüğü",
	}
	out := make([]Directorate, 0, len(names))
	for i, name := range names {
		out = append(out, Directorate{ID: int64(i + 1), Name: name})
	}
	return out
}

// Department is a front-desk department a visit is registered under.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Departments returns the static department table.
func Departments() []Department {
	return []Department{
		{ID: 1, Name: "İskan"},
		{ID: 2, Name: "Vergi"},
		{ID: 3, Name: "Su ve Kanalizasyon"},
		{ID: 4, Name: "İmar ve Ruhsat"},
		{ID: 5, Name: "Genel Başvuru"},
	}
}
