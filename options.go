package otfmarksheet

import (
	"github.com/nsip/otf-marksheet/internal/photo"
	"github.com/nsip/otf-marksheet/internal/util"
	"github.com/pkg/errors"
)

// largest photo accepted on an export request unless configured otherwise
const defaultMaxPhotoBytes = 5 << 20

type Option func(*OtfMarksheetService) error

//
// apply all supplied options to the service
// returns any error encountered while applying the options
//
func (srvc *OtfMarksheetService) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(srvc); err != nil {
			return err
		}
	}
	return nil
}

//
// set the name of this service instance, if none
// is provided a hashid-based name will be generated
//
func Name(name string) Option {
	return func(s *OtfMarksheetService) error {
		if name != "" {
			s.serviceName = name
			return nil
		}
		s.serviceName = util.GenerateName()
		return nil
	}
}

//
// set the unique id of this service instance, if none
// is provided a nuid will be generated
//
func ID(id string) Option {
	return func(s *OtfMarksheetService) error {
		if id != "" {
			s.serviceID = id
			return nil
		}
		s.serviceID = util.GenerateID()
		return nil
	}
}

//
// the host address the service runs on
//
func Host(hostName string) Option {
	return func(s *OtfMarksheetService) error {
		if hostName == "" {
			return errors.New("host name cannot be blank")
		}
		s.serviceHost = hostName
		return nil
	}
}

//
// the port the service listens on, 0 means
// pick any available port
//
func Port(port int) Option {
	return func(s *OtfMarksheetService) error {
		if port < 0 {
			return errors.Errorf("invalid port %d", port)
		}
		if port != 0 {
			s.servicePort = port
			return nil
		}
		p, err := util.AvailablePort()
		if err != nil {
			return errors.Wrap(err, "cannot assign a port to the service")
		}
		s.servicePort = p
		return nil
	}
}

//
// edge length in pixels of the photo thumbnail embedded
// in pdf exports, 0 means the default
//
func PhotoSize(px int) Option {
	return func(s *OtfMarksheetService) error {
		if px < 0 {
			return errors.Errorf("invalid photo size %d", px)
		}
		if px == 0 {
			px = photo.DefaultSize
		}
		s.photoSize = px
		return nil
	}
}

//
// largest decoded photo, in bytes, accepted on an
// export request. 0 means the default
//
func MaxPhotoBytes(n int) Option {
	return func(s *OtfMarksheetService) error {
		if n < 0 {
			return errors.Errorf("invalid max photo size %d", n)
		}
		if n == 0 {
			n = defaultMaxPhotoBytes
		}
		s.maxPhotoBytes = n
		return nil
	}
}
