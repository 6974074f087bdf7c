package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	otfms "github.com/nsip/otf-marksheet"
	"github.com/peterbourgon/ff/v3"
)

func main() {

	fs := flag.NewFlagSet("otf-marksheet", flag.ExitOnError)
	var (
		_             = fs.String("config", "", "config file (optional), json format.")
		serviceName   = fs.String("name", "", "name for this marksheet service instance")
		serviceID     = fs.String("id", "", "id for this marksheet service instance, leave blank to auto-generate a unique id")
		serviceHost   = fs.String("host", "localhost", "name/address of host for this service")
		servicePort   = fs.Int("port", 0, "port to run service on, if not specified will assign an available port automatically")
		photoSize     = fs.Int("photoSize", 0, "edge in pixels of the student photo embedded in pdf results, 0 for the default")
		maxPhotoBytes = fs.Int("maxPhotoBytes", 0, "largest student photo accepted on an export request, 0 for the default")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("OTF_MARKSHEET_SRVC"),
	); err != nil {
		fmt.Printf("\nCannot read otf-marksheet configuration:\n%s\n\n", err)
		os.Exit(1)
	}

	opts := []otfms.Option{
		otfms.Name(*serviceName),
		otfms.ID(*serviceID),
		otfms.Host(*serviceHost),
		otfms.Port(*servicePort),
		otfms.PhotoSize(*photoSize),
		otfms.MaxPhotoBytes(*maxPhotoBytes),
	}

	srvc, err := otfms.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create otf-marksheet service:\n%s\n\n", err)
		os.Exit(1)
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		fmt.Println("\notf-marksheet shutting down")
		srvc.Shutdown()
		fmt.Println("otf-marksheet closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
