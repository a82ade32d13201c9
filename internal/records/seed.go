package records

import (
	"time"

	"github.com/hongminglow/civic-tracker/internal/models"
)

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func seedVisits() []models.Visit {
	return []models.Visit{
		{ID: 1, CitizenName: "Ahmet Yılmaz", Date: day(2023, time.April, 15, 0, 0), ReasonCategory: "Evrak Teslimi", Description: "İnşaat ruhsatı evraklarını teslim etti", DepartmentID: "4", Status: models.VisitCompleted},
		{ID: 2, CitizenName: "Ayşe Kaya", Date: day(2023, time.April, 16, 0, 0), ReasonCategory: "Bilgi Talebi", Description: "Emlak vergisi muafiyeti hakkında bilgi aldı", DepartmentID: "2", Status: models.VisitInProgress, ForwardedTo: "Su ve Kanalizasyon Müdürlüğü"},
		{ID: 3, CitizenName: "Mehmet Demir", Date: day(2023, time.April, 17, 0, 0), ReasonCategory: "Hizmet Kaydı", Description: "Su aboneliği başvurusu yaptı", DepartmentID: "3", Status: models.VisitOpen, ForwardedTo: "İmar ve Şehircilik Müdürlüğü"},
		{ID: 4, CitizenName: "Fatma Şahin", Date: day(2023, time.April, 17, 0, 0), ReasonCategory: "Şikayet", Description: "İnşaat gürültüsü şikayeti", DepartmentID: "1", Status: models.VisitInProgress},
		{ID: 5, CitizenName: "Ali Öztürk", Date: day(2023, time.April, 18, 0, 0), ReasonCategory: "Ödeme", Description: "Emlak vergisi ödemesi yaptı", DepartmentID: "2", Status: models.VisitCompleted},
	}
}

func seedTasks() []models.Task {
	return []models.Task{
		{ID: 1, VisitID: 2, CitizenName: "Ayşe Kaya", Description: "Su faturası ödemesinde sorun yaşadı", Date: day(2023, time.April, 16, 0, 0), Status: models.TaskPending, ForwardedTo: "Su ve Kanalizasyon Müdürlüğü"},
		{ID: 2, VisitID: 3, CitizenName: "Mehmet Demir", Description: "İnşaat ruhsatı talebi", Date: day(2023, time.April, 17, 0, 0), Status: models.TaskInProgress, ForwardedTo: "İmar ve Şehircilik Müdürlüğü"},
	}
}

func seedEvents() []models.Event {
	return []models.Event{
		{
			ID:             1,
			RequestorName:  "Ahmet Yılmaz",
			ActivityName:   "Açılış",
			Address:        "Karabük Belediyesi Nikah Salonu, Merkez/Karabük",
			Date:           day(2023, time.June, 15, 14, 30),
			Attendees:      []string{"Başkan Mehmet Özcan", "Başkan Yardımcısı İsmail Büyükvarlık"},
			AdditionalInfo: "Açılış kurdelesini başkan kesecek",
		},
		{
			ID:             2,
			RequestorName:  "Fatma Kaya",
			ActivityName:   "Toplantı",
			Address:        "Karabük Üniversitesi Konferans Salonu, Merkez/Karabük",
			Date:           day(2023, time.June, 17, 10, 0),
			Attendees:      []string{"Başkan Yardımcısı Bilgin Atlı"},
			AdditionalInfo: "Üniversite yönetimi ile birlikte yapılacak",
		},
		{
			ID:             3,
			RequestorName:  "Mehmet Demir",
			ActivityName:   "Festival",
			Address:        "Kent Meydanı, Merkez/Karabük",
			Date:           day(2023, time.June, 20, 18, 0),
			Attendees:      []string{"Başkan Mehmet Özcan", "Başkan Yardımcısı İsmail Büyükvarlık", "Başkan Yardımcısı Bilgin Atlı"},
			AdditionalInfo: "Tüm halk davetlidir",
		},
	}
}
