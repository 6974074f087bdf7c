package otfmarksheet

import (
	"context"
	"fmt"
	"io/ioutil"
	"mime"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/nsip/otf-marksheet/internal/export"
	"github.com/nsip/otf-marksheet/internal/grade"
	"github.com/nsip/otf-marksheet/internal/util"
	"github.com/pkg/errors"
)

type OtfMarksheetService struct {
	// embedded web server to handle marksheet requests
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
	// edge in pixels of the photo thumbnail in pdf exports
	photoSize int
	// largest photo accepted on an export request
	maxPhotoBytes int
	// available export formats
	exporters *export.Registry
}

//
// create a new service instance
//
func New(options ...Option) (*OtfMarksheetService, error) {

	srvc := OtfMarksheetService{}

	defaults := []Option{
		Host("localhost"),
		PhotoSize(0),
		MaxPhotoBytes(0),
	}
	if err := srvc.setOptions(append(defaults, options...)...); err != nil {
		return nil, err
	}
	if srvc.serviceName == "" {
		srvc.serviceName = util.GenerateName()
	}
	if srvc.serviceID == "" {
		srvc.serviceID = util.GenerateID()
	}

	srvc.exporters = export.DefaultRegistry(srvc.photoSize)

	srvc.e = echo.New()
	srvc.e.HideBanner = true
	srvc.e.Logger.SetLevel(log.INFO)
	// add pingable method to know we're up
	srvc.e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "OK")
	})
	// on-screen marksheet
	srvc.e.POST("/marksheet", srvc.buildMarksheetHandler())
	// downloadable result documents
	srvc.e.POST("/export/:format", srvc.buildExportHandler())

	return &srvc, nil
}

//
// start the service running
//
func (s *OtfMarksheetService) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

//
// returns the computed marksheet for display:
// every subject with its percentage and grade, in the
// order given, plus the overall result
//
func (s *OtfMarksheetService) buildMarksheetHandler() echo.HandlerFunc {

	sName := s.serviceName
	sID := s.serviceID

	return func(c echo.Context) error {

		report, err := s.readReport(c)
		if err != nil {
			return err
		}

		results, overall := grade.ComputeResults(report.Subjects)

		marksheetResponse := map[string]interface{}{
			"student_info":   report.Identity,
			"subjects":       results,
			"overall_result": overall,
			"serviceID":      sID,
			"serviceName":    sName,
		}

		return c.JSON(http.StatusOK, marksheetResponse)
	}
}

//
// renders the marksheet in the format named in the path
// (pdf, docx or json) and returns it as a download named
// result_<roll_no>.<ext>
//
func (s *OtfMarksheetService) buildExportHandler() echo.HandlerFunc {

	return func(c echo.Context) error {

		format := c.Param("format")
		exporter, err := s.exporters.Lookup(format)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("unknown export format %q, expected one of %v", format, s.exporters.Formats()))
		}

		report, err := s.readReport(c)
		if err != nil {
			return err
		}

		defer util.TimeTrack(time.Now(), "export "+format)

		payload, err := exporter.Export(report)
		if err != nil {
			c.Logger().Error("export error: ", err)
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		c.Response().Header().Set(echo.HeaderContentDisposition,
			mime.FormatMediaType("attachment", map[string]string{"filename": payload.Filename}))

		return c.Blob(http.StatusOK, payload.MIMEType, payload.Data)
	}
}

func (s *OtfMarksheetService) readReport(c echo.Context) (export.Report, error) {

	body, err := ioutil.ReadAll(c.Request().Body)
	if err != nil {
		return export.Report{}, echo.NewHTTPError(http.StatusBadRequest, errors.Wrap(err, "cannot read request").Error())
	}

	report, err := parseReport(body, s.maxPhotoBytes)
	if err != nil {
		c.Logger().Warn("bad marksheet request: ", err)
		return export.Report{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return report, nil
}

//
// shut the server down gracefully
//
func (s *OtfMarksheetService) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		fmt.Println("could not shut down server cleanly: ", err)
		s.e.Logger.Fatal(err)
	}

}

func (s *OtfMarksheetService) PrintConfig() {

	fmt.Println("\n\tOTF-Marksheet Service Configuration")
	fmt.Println("\t-----------------------------------")
	fmt.Println()

	s.printID()
	s.printExportConfig()

}

func (s *OtfMarksheetService) printID() {
	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
}

func (s *OtfMarksheetService) printExportConfig() {
	fmt.Println("\texport formats:\t\t", s.exporters.Formats())
	fmt.Println("\tphoto size (px):\t", s.photoSize)
	fmt.Println("\tmax photo (bytes):\t", s.maxPhotoBytes)
}
